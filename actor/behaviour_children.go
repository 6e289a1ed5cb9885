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

// removesChildBehaviour forgets the children telling they are terminated.
// It sits before Termination so that a terminated actor still prunes its children.
type removesChildBehaviour struct {
	*abstractBehaviour
}

func (b *removesChildBehaviour) Kind() BehaviourKind {
	return RemovesChildKind
}

func (b *removesChildBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	if msg, ok := envelope.Message().(removeChild); ok {
		b.core.removeChild(msg.child)
		return MessageProcessed, nil
	}
	return b.pass(envelope)
}

// terminatesChildrenBehaviour terminates the children of a terminated actor.
// It does not wait for them.
type terminatesChildrenBehaviour struct {
	*abstractBehaviour
}

func (b *terminatesChildrenBehaviour) Kind() BehaviourKind {
	return TerminatesChildrenKind
}

func (b *terminatesChildrenBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	return b.pass(envelope)
}

func (b *terminatesChildrenBehaviour) OnEvent(public bool, event Event) {
	if event.Kind == TerminatedEvent {
		for _, child := range b.core.childrenRefs() {
			child.send(Terminate, nil, b.core.ref)
		}
	}
	b.abstractBehaviour.OnEvent(public, event)
}
