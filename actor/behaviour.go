// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package actor

import (
	"fmt"

	gerrors "github.com/tochemey/troupe/errors"
	"github.com/tochemey/troupe/internal/validation"
	"github.com/tochemey/troupe/supervisor"
)

type processedMarker struct{}

// MessageProcessed is returned by a behaviour that fully handled an envelope.
// When it reaches the end of a turn the envelope future is left untouched,
// because it was either completed already or will be completed later.
var MessageProcessed any = processedMarker{}

// Behaviour is one stage of an actor's behaviour chain.
//
// OnEnvelope either handles the envelope or passes it to the next stage.
// OnEvent reacts to a lifecycle event and relays it to the next stage.
// Behaviours are only invoked from within the turn of the actor owning them.
type Behaviour interface {
	Kind() BehaviourKind
	OnEnvelope(envelope *Envelope) (any, error)
	OnEvent(public bool, event Event)
}

// BehaviourKind identifies a behaviour
type BehaviourKind int

const (
	// BufferKind queues every envelope and processes one of them per turn
	BufferKind BehaviourKind = iota
	// RemovesChildKind forgets children once they are terminated
	RemovesChildKind
	// TerminationKind terminates the actor and rejects what arrives afterwards
	TerminationKind
	// TerminatesChildrenKind terminates the children of a terminated actor
	TerminatesChildrenKind
	// LinkingKind forwards public events to linked actors
	LinkingKind
	// SupervisedKind only accepts supervision controls from the supervisor
	SupervisedKind
	// PausingKind buffers messages while the actor is paused
	PausingKind
	// SupervisingKind reacts to paused children
	SupervisingKind
	// SetResultsKind completes futures and applies the error strategy
	SetResultsKind
	// AwaitsKind answers Await
	AwaitsKind
	// ExecutesContextKind hands messages to the Actor
	ExecutesContextKind
	// ErrorsOnUnknownMessageKind fails whatever reaches the end of the chain
	ErrorsOnUnknownMessageKind
)

// String returns the name of the behaviour kind
func (k BehaviourKind) String() string {
	switch k {
	case BufferKind:
		return "Buffer"
	case RemovesChildKind:
		return "RemovesChild"
	case TerminationKind:
		return "Termination"
	case TerminatesChildrenKind:
		return "TerminatesChildren"
	case LinkingKind:
		return "Linking"
	case SupervisedKind:
		return "Supervised"
	case PausingKind:
		return "Pausing"
	case SupervisingKind:
		return "Supervising"
	case SetResultsKind:
		return "SetResults"
	case AwaitsKind:
		return "Awaits"
	case ExecutesContextKind:
		return "ExecutesContext"
	case ErrorsOnUnknownMessageKind:
		return "ErrorsOnUnknownMessage"
	default:
		return fmt.Sprintf("Behaviour(%d)", int(k))
	}
}

// ErrorStrategy is what an actor does when handling a message failed
type ErrorStrategy int

const (
	// JustLog logs the failure and keeps going
	JustLog ErrorStrategy = iota
	// TerminateOnError terminates the actor
	TerminateOnError
	// PauseOnError pauses the actor until its supervisor decides what to do
	PauseOnError
)

// String returns the name of the error strategy
func (s ErrorStrategy) String() string {
	switch s {
	case JustLog:
		return "JustLog"
	case TerminateOnError:
		return "TerminateOnError"
	case PauseOnError:
		return "PauseOnError"
	default:
		return fmt.Sprintf("ErrorStrategy(%d)", int(s))
	}
}

// BehaviourSpec describes one stage of a behaviour definition
type BehaviourSpec struct {
	kind       BehaviourKind
	onError    ErrorStrategy
	supervisor *supervisor.Supervisor
}

// Kind returns the kind of behaviour the spec builds
func (s BehaviourSpec) Kind() BehaviourKind {
	return s.kind
}

// String returns a printable form of the spec
func (s BehaviourSpec) String() string {
	switch s.kind {
	case SetResultsKind:
		return fmt.Sprintf("%s(%s)", s.kind, s.onError)
	case SupervisingKind:
		return fmt.Sprintf("%s(%s, %s)", s.kind, s.supervisor.Directive(), s.supervisor.Strategy())
	default:
		return s.kind.String()
	}
}

// Buffer returns the spec of the behaviour isolating the actor from message floods.
func Buffer() BehaviourSpec { return BehaviourSpec{kind: BufferKind} }

// RemovesChild returns the spec of the behaviour handling terminated children.
// It has to come before Termination so that terminated actors still forget their children.
func RemovesChild() BehaviourSpec { return BehaviourSpec{kind: RemovesChildKind} }

// Termination returns the spec of the termination behaviour
func Termination() BehaviourSpec { return BehaviourSpec{kind: TerminationKind} }

// TerminatesChildren returns the spec of the behaviour cascading termination to children
func TerminatesChildren() BehaviourSpec { return BehaviourSpec{kind: TerminatesChildrenKind} }

// Linking returns the spec of the linking behaviour
func Linking() BehaviourSpec { return BehaviourSpec{kind: LinkingKind} }

// Supervised returns the spec of the supervised behaviour
func Supervised() BehaviourSpec { return BehaviourSpec{kind: SupervisedKind} }

// Pausing returns the spec of the pausing behaviour
func Pausing() BehaviourSpec { return BehaviourSpec{kind: PausingKind} }

// Supervising returns the spec of the supervising behaviour.
// A nil supervisor means Reset with OneForOne.
func Supervising(sup *supervisor.Supervisor) BehaviourSpec {
	if sup == nil {
		sup = supervisor.NewSupervisor()
	}
	return BehaviourSpec{kind: SupervisingKind, supervisor: sup}
}

// SetResults returns the spec of the behaviour collecting results with the given error strategy
func SetResults(onError ErrorStrategy) BehaviourSpec {
	return BehaviourSpec{kind: SetResultsKind, onError: onError}
}

// Awaits returns the spec of the behaviour answering Await
func Awaits() BehaviourSpec { return BehaviourSpec{kind: AwaitsKind} }

// ExecutesContext returns the spec of the behaviour calling the Actor
func ExecutesContext() BehaviourSpec { return BehaviourSpec{kind: ExecutesContextKind} }

// ErrorsOnUnknownMessage returns the spec of the tail behaviour
func ErrorsOnUnknownMessage() BehaviourSpec { return BehaviourSpec{kind: ErrorsOnUnknownMessageKind} }

// BehaviourDefinition lists the behaviours of a chain, outermost first
type BehaviourDefinition []BehaviourSpec

// BaseBehaviours returns the behaviours every actor needs
func BaseBehaviours() BehaviourDefinition {
	return BehaviourDefinition{Buffer(), RemovesChild(), Termination(), TerminatesChildren()}
}

// LinkingBehaviours returns the linking behaviours
func LinkingBehaviours() BehaviourDefinition {
	return BehaviourDefinition{Linking()}
}

// SupervisedBehaviours returns the behaviours of an actor that can be supervised
func SupervisedBehaviours() BehaviourDefinition {
	return BehaviourDefinition{Supervised(), Pausing()}
}

// SupervisingBehaviours returns the behaviours of an actor supervising its children
func SupervisingBehaviours(sup *supervisor.Supervisor) BehaviourDefinition {
	return BehaviourDefinition{Supervising(sup)}
}

// UserMessageBehaviours returns the behaviours delivering messages to the Actor
func UserMessageBehaviours(onError ErrorStrategy) BehaviourDefinition {
	return BehaviourDefinition{SetResults(onError), Awaits(), ExecutesContext(), ErrorsOnUnknownMessage()}
}

// BasicBehaviourDefinition is the default definition: an actor that terminates
// when handling a message fails.
func BasicBehaviourDefinition() BehaviourDefinition {
	return concat(
		BaseBehaviours(),
		LinkingBehaviours(),
		UserMessageBehaviours(TerminateOnError),
	)
}

// RestartingBehaviourDefinition is the definition of an actor that pauses when
// handling a message fails, can be supervised and supervises its own children
// with the given supervisor. A nil supervisor means Reset with OneForOne.
func RestartingBehaviourDefinition(sup *supervisor.Supervisor) BehaviourDefinition {
	return concat(
		BaseBehaviours(),
		LinkingBehaviours(),
		SupervisedBehaviours(),
		SupervisingBehaviours(sup),
		UserMessageBehaviours(PauseOnError),
	)
}

func concat(parts ...BehaviourDefinition) BehaviourDefinition {
	var definition BehaviourDefinition
	for _, part := range parts {
		definition = append(definition, part...)
	}
	return definition
}

// Has reports whether the definition holds a behaviour of the given kind
func (d BehaviourDefinition) Has(kind BehaviourKind) bool {
	for _, spec := range d {
		if spec.kind == kind {
			return true
		}
	}
	return false
}

// Validate checks the definition can be assembled into a working chain
func (d BehaviourDefinition) Validate() error {
	if len(d) == 0 {
		return gerrors.NewErrInvalidBehaviourDefinition("empty definition")
	}

	seen := make(map[BehaviourKind]bool, len(d))
	chain := validation.New()
	for _, spec := range d {
		chain.AddAssertion(!seen[spec.kind],
			gerrors.NewErrInvalidBehaviourDefinition(fmt.Sprintf("%s is listed more than once", spec.kind)))
		seen[spec.kind] = true

		switch spec.kind {
		case SupervisingKind:
			if spec.supervisor == nil {
				chain.AddAssertion(false, gerrors.NewErrInvalidBehaviourDefinition("Supervising requires a supervisor"))
				continue
			}
			chain.AddValidator(spec.supervisor)
		case SetResultsKind:
			chain.AddAssertion(spec.onError >= JustLog && spec.onError <= PauseOnError,
				gerrors.NewErrInvalidBehaviourDefinition(fmt.Sprintf("unknown error strategy %s", spec.onError)))
			chain.AddAssertion(spec.onError != PauseOnError || d.Has(PausingKind),
				gerrors.NewErrInvalidBehaviourDefinition("PauseOnError requires Pausing"))
		case SupervisedKind:
			chain.AddAssertion(d.Has(LinkingKind) && d.Has(PausingKind),
				gerrors.NewErrInvalidBehaviourDefinition("Supervised requires Linking and Pausing"))
		}
	}

	for _, kind := range []BehaviourKind{TerminationKind, SetResultsKind, ExecutesContextKind} {
		chain.AddAssertion(seen[kind],
			gerrors.NewErrInvalidBehaviourDefinition(fmt.Sprintf("%s is required", kind)))
	}

	chain.AddAssertion(d[len(d)-1].kind == ErrorsOnUnknownMessageKind,
		gerrors.NewErrInvalidBehaviourDefinition("ErrorsOnUnknownMessage must be the last behaviour"))

	return chain.Validate()
}

// build assembles the chain, returning its head and the behaviours by kind
func (d BehaviourDefinition) build(c *core) (Behaviour, map[BehaviourKind]Behaviour) {
	byKind := make(map[BehaviourKind]Behaviour, len(d))

	var next Behaviour
	for i := len(d) - 1; i >= 0; i-- {
		spec := d[i]
		base := &abstractBehaviour{core: c, next: next}

		var stage Behaviour
		switch spec.kind {
		case BufferKind:
			stage = newBufferBehaviour(base)
		case RemovesChildKind:
			stage = &removesChildBehaviour{base}
		case TerminationKind:
			stage = newTerminationBehaviour(base)
		case TerminatesChildrenKind:
			stage = &terminatesChildrenBehaviour{base}
		case LinkingKind:
			stage = newLinkingBehaviour(base)
		case SupervisedKind:
			stage = newSupervisedBehaviour(base)
		case PausingKind:
			stage = newPausingBehaviour(base)
		case SupervisingKind:
			stage = &supervisingBehaviour{abstractBehaviour: base, supervisor: spec.supervisor}
		case SetResultsKind:
			stage = &setResultsBehaviour{abstractBehaviour: base, onError: spec.onError}
		case AwaitsKind:
			stage = &awaitsBehaviour{base}
		case ExecutesContextKind:
			stage = &executesContextBehaviour{base}
		case ErrorsOnUnknownMessageKind:
			stage = &errorsOnUnknownMessageBehaviour{base}
		}

		byKind[spec.kind] = stage
		next = stage
	}
	return next, byKind
}

// abstractBehaviour holds what every behaviour shares: its actor and the next stage
type abstractBehaviour struct {
	core *core
	next Behaviour
}

// pass hands the envelope to the next stage
func (b *abstractBehaviour) pass(envelope *Envelope) (any, error) {
	if b.next == nil {
		return nil, gerrors.NewUnknownMessageError(envelope.Message())
	}
	return b.next.OnEnvelope(envelope)
}

// OnEvent relays the event to the next stage
func (b *abstractBehaviour) OnEvent(public bool, event Event) {
	if b.next != nil {
		b.next.OnEvent(public, event)
	}
}

func (b *abstractBehaviour) broadcast(public bool, event Event) {
	b.core.broadcast(public, event)
}

func (b *abstractBehaviour) rejectEnvelope(envelope *Envelope, reason error) {
	b.core.rejectEnvelope(envelope, reason)
}
