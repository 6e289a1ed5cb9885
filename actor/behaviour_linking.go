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
	mapset "github.com/deckarep/golang-set/v2"
)

// linkingBehaviour forwards the public events of the actor to the linked actors.
// Linked actors receive the events as messages sent by this actor.
type linkingBehaviour struct {
	*abstractBehaviour
	linked mapset.Set[*Reference]
}

func newLinkingBehaviour(base *abstractBehaviour) *linkingBehaviour {
	return &linkingBehaviour{
		abstractBehaviour: base,
		linked:            mapset.NewThreadUnsafeSet[*Reference](),
	}
}

func (b *linkingBehaviour) Kind() BehaviourKind {
	return LinkingKind
}

func (b *linkingBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	switch envelope.Message() {
	case Link:
		return b.link(envelope.Sender()), nil
	case Unlink:
		return b.unlink(envelope.Sender()), nil
	case IsLinked:
		sender := envelope.Sender()
		return sender != nil && b.linked.Contains(sender), nil
	}
	return b.pass(envelope)
}

func (b *linkingBehaviour) OnEvent(public bool, event Event) {
	if public {
		b.linked.Each(func(ref *Reference) bool {
			ref.send(event, nil, b.core.ref)
			return false
		})
	}

	// a terminated actor will not emit anything else
	if event.Kind == TerminatedEvent {
		b.linked.Clear()
	}
	b.abstractBehaviour.OnEvent(public, event)
}

func (b *linkingBehaviour) link(ref *Reference) bool {
	if ref == nil {
		return false
	}
	b.linked.Add(ref)
	return true
}

func (b *linkingBehaviour) unlink(ref *Reference) bool {
	if ref == nil {
		return false
	}
	b.linked.Remove(ref)
	return true
}
