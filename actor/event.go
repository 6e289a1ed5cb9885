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
	"time"
)

// EventKind identifies a lifecycle event
type EventKind int

const (
	// TerminatedEvent is broadcast once, when the actor terminates
	TerminatedEvent EventKind = iota
	// PausedEvent is broadcast when the actor pauses. It carries the failure
	// cause when the actor paused on error.
	PausedEvent
	// ResumedEvent is broadcast when the actor resumes
	ResumedEvent
	// ResettingEvent is a private event broadcast before the actor state is rebuilt by a reset
	ResettingEvent
	// ResetEvent is broadcast after a reset
	ResetEvent
	// RestartingEvent is a private event broadcast before the actor state is rebuilt by a restart
	RestartingEvent
	// RestartedEvent is broadcast after a restart
	RestartedEvent
)

// String returns the name of the event kind
func (k EventKind) String() string {
	switch k {
	case TerminatedEvent:
		return "terminated"
	case PausedEvent:
		return "paused"
	case ResumedEvent:
		return "resumed"
	case ResettingEvent:
		return "resetting"
	case ResetEvent:
		return "reset"
	case RestartingEvent:
		return "restarting"
	case RestartedEvent:
		return "restarted"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a lifecycle event. Public events are forwarded to the linked
// actors as messages, with the emitting actor as sender.
type Event struct {
	Kind  EventKind
	Cause error
}

// String returns a printable form of the event
func (e Event) String() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s(%v)", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

// LifecycleEvent is published on the LifecycleTopic for every public event
type LifecycleEvent struct {
	Actor     *Reference
	Event     Event
	Timestamp time.Time
}

// DeadLetter is an envelope rejected without a future to fail.
// It is sent to the dead letters actor and published on the DeadLetterTopic.
type DeadLetter struct {
	Envelope  *Envelope
	Reason    error
	Timestamp time.Time
}
