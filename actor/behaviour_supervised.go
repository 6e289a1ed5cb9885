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

// supervisedBehaviour holds the supervisor of the actor. The supervision
// controls are only accepted from it; anybody else gets a false answer.
type supervisedBehaviour struct {
	*abstractBehaviour
	supervisor *Reference
}

func newSupervisedBehaviour(base *abstractBehaviour) *supervisedBehaviour {
	return &supervisedBehaviour{abstractBehaviour: base}
}

func (b *supervisedBehaviour) Kind() BehaviourKind {
	return SupervisedKind
}

func (b *supervisedBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	switch envelope.Message() {
	case Supervise:
		return b.supervise(envelope.Sender()), nil
	case UnSupervise:
		return b.unSupervise(envelope.Sender()), nil
	case CurrentSupervisor:
		return b.supervisor, nil
	case Pause, Resume, Reset, Restart:
		if b.supervisor != nil && b.supervisor.Equals(envelope.Sender()) {
			return b.pass(envelope)
		}
		return false, nil
	}
	return b.pass(envelope)
}

func (b *supervisedBehaviour) OnEvent(public bool, event Event) {
	if event.Kind == TerminatedEvent {
		b.supervisor = nil
	}
	b.abstractBehaviour.OnEvent(public, event)
}

func (b *supervisedBehaviour) supervise(ref *Reference) bool {
	if ref == nil {
		return false
	}
	b.supervisor = ref
	b.core.linking().link(ref)
	return true
}

func (b *supervisedBehaviour) unSupervise(ref *Reference) bool {
	if b.supervisor == nil || !b.supervisor.Equals(ref) {
		return false
	}
	b.supervisor = nil
	b.core.linking().unlink(ref)
	return true
}
