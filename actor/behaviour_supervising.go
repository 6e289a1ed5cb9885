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
	"github.com/tochemey/troupe/supervisor"
)

// supervisingBehaviour reacts to the paused events sent by linked children.
// The directive goes to the paused child or to every child, depending on the strategy.
type supervisingBehaviour struct {
	*abstractBehaviour
	supervisor *supervisor.Supervisor
}

func (b *supervisingBehaviour) Kind() BehaviourKind {
	return SupervisingKind
}

func (b *supervisingBehaviour) OnEnvelope(envelope *Envelope) (any, error) {
	event, ok := envelope.Message().(Event)
	if !ok || event.Kind != PausedEvent || envelope.Sender() == nil {
		return b.pass(envelope)
	}

	directive := directiveControl(b.supervisor.Directive())
	if b.supervisor.Strategy() == supervisor.OneForAllStrategy {
		for _, child := range b.core.childrenRefs() {
			child.send(directive, nil, b.core.ref)
		}
		return MessageProcessed, nil
	}

	envelope.Sender().send(directive, nil, b.core.ref)
	return MessageProcessed, nil
}

func directiveControl(directive supervisor.Directive) Control {
	switch directive {
	case supervisor.TerminateDirective:
		return Terminate
	case supervisor.ResumeDirective:
		return Resume
	case supervisor.RestartDirective:
		return Restart
	default:
		return Reset
	}
}
