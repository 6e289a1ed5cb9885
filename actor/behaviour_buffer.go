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
	gerrors "github.com/tochemey/troupe/errors"
)

// bufferBehaviour queues the incoming envelopes and processes one of them per
// turn. At most one drain turn is scheduled at a time, so other turns of the
// actor interleave with the processing of a flood of messages.
type bufferBehaviour struct {
	*abstractBehaviour
	queue     []*Envelope
	scheduled bool
}

func newBufferBehaviour(base *abstractBehaviour) *bufferBehaviour {
	return &bufferBehaviour{abstractBehaviour: base}
}

func (b *bufferBehaviour) Kind() BehaviourKind {
	return BufferKind
}

func (b *bufferBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	b.queue = append(b.queue, envelope)
	b.drainLater()
	return MessageProcessed, nil
}

func (b *bufferBehaviour) OnEvent(public bool, event Event) {
	if event.Kind == TerminatedEvent {
		pending := b.queue
		b.queue = nil
		reason := gerrors.NewActorTerminatedError(b.core.path)
		for _, envelope := range pending {
			b.rejectEnvelope(envelope, reason)
		}
	}
	b.abstractBehaviour.OnEvent(public, event)
}

func (b *bufferBehaviour) drainLater() {
	if b.scheduled || len(b.queue) == 0 {
		return
	}
	b.scheduled = true
	b.core.scheduleTurn(b.drain)
}

func (b *bufferBehaviour) drain() {
	var envelope *Envelope
	defer func() {
		if r := recover(); r != nil && envelope != nil {
			err := toPanicError(r)
			b.core.logger.Errorf("turn panicked: %v", err)
			b.core.settle(envelope, nil, err)
		}
		b.scheduled = false
		b.drainLater()
	}()

	if len(b.queue) == 0 {
		return
	}

	envelope = b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]

	result, err := b.pass(envelope)
	b.core.settle(envelope, result, err)
}
