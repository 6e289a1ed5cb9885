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

// pausingBehaviour buffers the ordinary envelopes while the actor is paused.
// Resume and Reset replay the buffer, each envelope in its own turn and in
// arrival order. Restart drops it.
type pausingBehaviour struct {
	*abstractBehaviour
	paused bool
	buffer []*Envelope
}

func newPausingBehaviour(base *abstractBehaviour) *pausingBehaviour {
	return &pausingBehaviour{abstractBehaviour: base}
}

func (b *pausingBehaviour) Kind() BehaviourKind {
	return PausingKind
}

func (b *pausingBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	switch envelope.Message() {
	case Pause:
		return b.pause(nil), nil
	case Resume:
		return b.resume(), nil
	case Reset:
		return b.reset(), nil
	case Restart:
		return b.restart(), nil
	}

	if b.paused {
		b.buffer = append(b.buffer, envelope)
		return MessageProcessed, nil
	}
	return b.pass(envelope)
}

func (b *pausingBehaviour) OnEvent(public bool, event Event) {
	if event.Kind == TerminatedEvent {
		b.rejectBuffer(gerrors.NewActorTerminatedError(b.core.path))
	}
	b.abstractBehaviour.OnEvent(public, event)
}

// pause broadcasts the cause of the pause when there is one
func (b *pausingBehaviour) pause(cause error) bool {
	b.paused = true
	b.broadcast(true, Event{Kind: PausedEvent, Cause: cause})
	return true
}

func (b *pausingBehaviour) resume() bool {
	b.doResume()
	b.broadcast(true, Event{Kind: ResumedEvent})
	return true
}

func (b *pausingBehaviour) reset() bool {
	b.broadcast(false, Event{Kind: ResettingEvent})
	if err := b.core.rebuild(); err != nil {
		return false
	}
	b.doResume()
	b.broadcast(true, Event{Kind: ResetEvent})
	return true
}

func (b *pausingBehaviour) restart() bool {
	b.broadcast(false, Event{Kind: RestartingEvent})
	if err := b.core.rebuild(); err != nil {
		return false
	}
	b.rejectBuffer(gerrors.ErrMessageDropped)
	b.doResume()
	b.broadcast(true, Event{Kind: RestartedEvent})
	return true
}

func (b *pausingBehaviour) doResume() {
	b.paused = false
	pending := b.buffer
	b.buffer = nil
	for _, envelope := range pending {
		b.core.scheduleTurn(func() { b.replay(envelope) })
	}
}

// replay processes a buffered envelope from this stage on. The actor may
// have been terminated or paused again since the envelope was buffered.
func (b *pausingBehaviour) replay(envelope *Envelope) {
	if b.core.isTerminated() {
		b.rejectEnvelope(envelope, gerrors.NewActorTerminatedError(b.core.path))
		return
	}
	result, err := b.OnEnvelope(envelope)
	b.core.settle(envelope, result, err)
}

func (b *pausingBehaviour) rejectBuffer(reason error) {
	pending := b.buffer
	b.buffer = nil
	for _, envelope := range pending {
		b.rejectEnvelope(envelope, reason)
	}
}
