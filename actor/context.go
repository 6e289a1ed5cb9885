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
	"github.com/tochemey/troupe/future"
	"github.com/tochemey/troupe/internal/validation"
	"github.com/tochemey/troupe/log"
)

// ActorContext is handed to the Actor for the duration of a turn.
// It must not be retained nor used from another goroutine: the methods
// touching the actor state panic outside of the actor's turn.
type ActorContext struct {
	core     *core
	envelope *Envelope
	turn     uint64
}

func newActorContext(c *core, envelope *Envelope) *ActorContext {
	return &ActorContext{core: c, envelope: envelope, turn: c.turn.Load()}
}

// guard panics when the context is used outside of the turn it was created for
func (x *ActorContext) guard() {
	x.core.guard()
	if x.core.turn.Load() != x.turn {
		panic(fmt.Errorf("%w: %s", gerrors.ErrOutsideActorTurn, x.core.path))
	}
}

// Self returns the reference of the actor
func (x *ActorContext) Self() *Reference {
	return x.core.ref
}

// Parent returns the reference of the parent, nil for the root actor
func (x *ActorContext) Parent() *Reference {
	return x.core.parent
}

// Name returns the actor name
func (x *ActorContext) Name() string {
	return x.core.name
}

// Path returns the actor path
func (x *ActorContext) Path() string {
	return x.core.path
}

// Envelope returns the envelope being handled, nil outside of OnMessage
func (x *ActorContext) Envelope() *Envelope {
	return x.envelope
}

// Message returns the message being handled
func (x *ActorContext) Message() any {
	if x.envelope == nil {
		return nil
	}
	return x.envelope.Message()
}

// Sender returns the sender of the message being handled, nil when it was
// sent from outside any actor
func (x *ActorContext) Sender() *Reference {
	if x.envelope == nil {
		return nil
	}
	return x.envelope.Sender()
}

// Logger returns the logger of the actor
func (x *ActorContext) Logger() log.Logger {
	return x.core.logger
}

// System returns the actor system the actor belongs to
func (x *ActorContext) System() ActorSystem {
	return x.core.system
}

// DeadLetters returns where the envelopes rejected by the actor are sent
func (x *ActorContext) DeadLetters() *Reference {
	return x.core.deadLetters
}

// Children returns the live children of the actor ordered by path
func (x *ActorContext) Children() []*Reference {
	x.guard()
	return x.core.childrenRefs()
}

// Spawn creates a child actor. The child starts asynchronously: messages
// sent to the returned reference are handled once it is initialized.
// A terminated actor cannot spawn children.
func (x *ActorContext) Spawn(name string, producer Producer, opts ...SpawnOption) (*Reference, error) {
	x.guard()
	if x.core.isTerminated() {
		return nil, gerrors.NewActorTerminatedError(x.core.path)
	}

	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewNameValidator(name)).
		AddAssertion(producer != nil, gerrors.ErrProducerRequired).
		Validate(); err != nil {
		return nil, err
	}

	child, err := newCore(x.core.system, x.core, name, producer, newSpawnConfig(opts...))
	if err != nil {
		return nil, err
	}

	x.core.addChild(child.ref)
	child.boot()
	return child.ref, nil
}

// Tell sends the message to the given actor with this actor as sender
func (x *ActorContext) Tell(to *Reference, message any) {
	to.send(message, nil, x.core.ref)
}

// Ask sends the message to the given actor with this actor as sender.
// The returned future must not be awaited from within the turn.
func (x *ActorContext) Ask(to *Reference, message any) *future.Future {
	fut := future.New()
	to.send(message, fut, x.core.ref)
	return fut
}

// Pass hands the message being handled back to the behaviour chain.
// Messages nobody handles fail with an unknown message error.
func (x *ActorContext) Pass() (any, error) {
	x.guard()
	stage, ok := x.core.behaviour(ExecutesContextKind).(*executesContextBehaviour)
	if !ok || x.envelope == nil {
		return nil, gerrors.NewUnknownMessageError(x.Message())
	}
	return stage.pass(x.envelope)
}

// Redirect sends the message being handled to the given actor. The future of
// the envelope travels along, so the other actor answers the original asker.
func (x *ActorContext) Redirect(to *Reference) (any, error) {
	return x.Forward(to, x.envelope)
}

// Forward sends the message of the given envelope, together with its future,
// to the given actor with this actor as sender.
func (x *ActorContext) Forward(to *Reference, envelope *Envelope) (any, error) {
	if envelope == nil {
		return nil, gerrors.NewUnknownMessageError(nil)
	}
	to.send(envelope.Message(), envelope.Future(), x.core.ref)
	return MessageProcessed, nil
}

// Terminate terminates the actor. The message being handled still
// completes with whatever OnMessage returns.
func (x *ActorContext) Terminate() {
	x.guard()
	x.core.termination().terminate()
}
