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
)

// Control is the closed set of control messages handled by the behaviour chain.
type Control int

const (
	// Terminate terminates the actor. Terminating twice is a no-op.
	// Answers true.
	Terminate Control = iota
	// IsTerminated answers whether the actor is terminated
	IsTerminated
	// Link links the sender to the actor: the sender receives the actor's public events.
	// Answers true.
	Link
	// Unlink removes the sender from the linked actors. Answers true.
	Unlink
	// IsLinked answers whether the sender is linked to the actor
	IsLinked
	// Supervise makes the sender the supervisor of the actor and links it. Answers true.
	Supervise
	// UnSupervise removes the sender as supervisor. Answers false when the sender is not the supervisor.
	UnSupervise
	// CurrentSupervisor answers the supervisor reference, or nil
	CurrentSupervisor
	// Pause pauses the actor: ordinary messages are buffered until it is resumed.
	// Only accepted from the supervisor of a supervised actor.
	Pause
	// Resume resumes a paused actor and replays its buffered messages in order.
	// Only accepted from the supervisor of a supervised actor.
	Resume
	// Reset rebuilds the actor state, then resumes it.
	// Only accepted from the supervisor of a supervised actor.
	Reset
	// Restart rebuilds the actor state, drops its buffered messages and resumes it.
	// Only accepted from the supervisor of a supervised actor.
	Restart
	// Await answers true once every message sent before it has been handled
	Await
)

// String returns the name of the control message
func (c Control) String() string {
	switch c {
	case Terminate:
		return "Terminate"
	case IsTerminated:
		return "IsTerminated"
	case Link:
		return "Link"
	case Unlink:
		return "Unlink"
	case IsLinked:
		return "IsLinked"
	case Supervise:
		return "Supervise"
	case UnSupervise:
		return "UnSupervise"
	case CurrentSupervisor:
		return "CurrentSupervisor"
	case Pause:
		return "Pause"
	case Resume:
		return "Resume"
	case Reset:
		return "Reset"
	case Restart:
		return "Restart"
	case Await:
		return "Await"
	default:
		return fmt.Sprintf("Control(%d)", int(c))
	}
}

// removeChild is sent by a terminating actor to its parent
type removeChild struct {
	child *Reference
}

// spawnRequest is handled by the root actor on behalf of ActorSystem.Spawn
type spawnRequest struct {
	name     string
	producer Producer
	opts     []SpawnOption
}

// deadLettersCount is handled by the dead letters actor
type deadLettersCount struct {
	address string
}
