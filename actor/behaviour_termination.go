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

// terminationBehaviour holds the one-shot terminated flag. Once terminated,
// every envelope other than the termination queries is rejected.
type terminationBehaviour struct {
	*abstractBehaviour
	terminated bool
}

func newTerminationBehaviour(base *abstractBehaviour) *terminationBehaviour {
	return &terminationBehaviour{abstractBehaviour: base}
}

func (b *terminationBehaviour) Kind() BehaviourKind {
	return TerminationKind
}

func (b *terminationBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	switch envelope.Message() {
	case IsTerminated:
		return b.terminated, nil
	case Terminate:
		b.terminate()
		return true, nil
	}

	if b.terminated {
		b.rejectEnvelope(envelope, gerrors.NewActorTerminatedError(b.core.path))
		return MessageProcessed, nil
	}
	return b.pass(envelope)
}

// terminate is idempotent
func (b *terminationBehaviour) terminate() {
	if b.terminated {
		return
	}

	b.terminated = true
	b.core.terminating.Store(true)
	b.broadcast(true, Event{Kind: TerminatedEvent})

	if parent := b.core.parent; parent != nil {
		parent.send(removeChild{child: b.core.ref}, nil, b.core.ref)
	}
	b.core.terminationDone()
}
