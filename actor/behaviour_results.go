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
	"errors"
	"fmt"
	"runtime"
	"time"

	gerrors "github.com/tochemey/troupe/errors"
)

// setResultsBehaviour completes the envelope future with the value returned
// by the rest of the chain. Failures, panics included, are logged, handled
// according to the error strategy and then fail the future.
type setResultsBehaviour struct {
	*abstractBehaviour
	onError ErrorStrategy
}

func (b *setResultsBehaviour) Kind() BehaviourKind {
	return SetResultsKind
}

func (b *setResultsBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	start := time.Now()
	result, err := b.invoke(envelope)
	if err == nil {
		if result != MessageProcessed && envelope.Future() != nil {
			envelope.Future().Success(result)
		}
		b.core.recordProcessed(time.Since(start))
		return MessageProcessed, nil
	}

	b.core.logger.Errorf("failed to handle %s: %v", envelope, err)
	b.core.recordFailure()

	switch b.onError {
	case TerminateOnError:
		b.core.termination().terminate()
	case PauseOnError:
		b.core.pausing().pause(err)
	case JustLog:
	}

	envelope.Reject(err)
	return MessageProcessed, nil
}

func (b *setResultsBehaviour) invoke(envelope *Envelope) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, toPanicError(r)
		}
	}()
	return b.pass(envelope)
}

// toPanicError enriches the recovered value with the location of the panic
func toPanicError(r any) error {
	var pe *gerrors.PanicError
	if err, ok := r.(error); ok && errors.As(err, &pe) {
		return pe
	}

	pc, fn, line, _ := runtime.Caller(3)
	if err, ok := r.(error); ok {
		return gerrors.NewPanicError(fmt.Errorf("%w at %s[%s:%d]", err, runtime.FuncForPC(pc).Name(), fn, line))
	}
	return gerrors.NewPanicError(fmt.Errorf("%#v at %s[%s:%d]", r, runtime.FuncForPC(pc).Name(), fn, line))
}

// awaitsBehaviour answers Await. Since envelopes are handled in order, the
// answer means every envelope sent before it has been handled.
type awaitsBehaviour struct {
	*abstractBehaviour
}

func (b *awaitsBehaviour) Kind() BehaviourKind {
	return AwaitsKind
}

func (b *awaitsBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	if envelope.Message() == Await {
		return true, nil
	}
	return b.pass(envelope)
}

// executesContextBehaviour hands the messages to the Actor and relays the
// events to its EventHandler. Control messages nobody consumed skip the Actor.
type executesContextBehaviour struct {
	*abstractBehaviour
}

func (b *executesContextBehaviour) Kind() BehaviourKind {
	return ExecutesContextKind
}

func (b *executesContextBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	if _, ok := envelope.Message().(Control); ok {
		return b.pass(envelope)
	}
	return b.core.receive(envelope)
}

func (b *executesContextBehaviour) OnEvent(public bool, event Event) {
	b.core.notify(event)
	b.abstractBehaviour.OnEvent(public, event)
}

// errorsOnUnknownMessageBehaviour is the tail of every chain. The events of
// linked actors are not an error: an actor may link without handling them.
type errorsOnUnknownMessageBehaviour struct {
	*abstractBehaviour
}

func (b *errorsOnUnknownMessageBehaviour) Kind() BehaviourKind {
	return ErrorsOnUnknownMessageKind
}

func (b *errorsOnUnknownMessageBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	if event, ok := envelope.Message().(Event); ok {
		b.core.logger.Debugf("ignored %s from %s", event, envelope.SenderPath())
		return nil, nil
	}
	return nil, gerrors.NewUnknownMessageError(envelope.Message())
}
