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
	"context"
	"fmt"

	"github.com/tochemey/troupe/future"
)

// Reference is the public handle of an actor. There is exactly one Reference
// per actor, so references can be compared with == or Equals.
// A Reference is safe for concurrent use.
type Reference struct {
	core *core
}

func newReference(c *core) *Reference {
	return &Reference{core: c}
}

// Tell sends the message without waiting for the result.
// Failures are never reported to the caller. It returns the reference
// so that calls can be chained.
func (r *Reference) Tell(message any) *Reference {
	r.send(message, nil, nil)
	return r
}

// Ask sends the message and returns the future completed with the result.
// Asking a terminated actor fails the future with an error matching
// errors.ErrActorTerminated.
func (r *Reference) Ask(message any) *future.Future {
	fut := future.New()
	r.send(message, fut, nil)
	return fut
}

// AskSync sends the message and blocks until the result is available or ctx is done.
//
// AskSync must not be called from within an actor: it would hold a worker of
// the shared executor while waiting for other actors to run.
func (r *Reference) AskSync(ctx context.Context, message any) (any, error) {
	return r.Ask(message).Await(ctx)
}

// Name returns the actor name
func (r *Reference) Name() string {
	return r.core.name
}

// Path returns the actor path, "/" for the root actor
func (r *Reference) Path() string {
	return r.core.path
}

// Parent returns the parent reference, nil for the root actor
func (r *Reference) Parent() *Reference {
	return r.core.parent
}

// IsTerminated reports whether the actor has terminated
func (r *Reference) IsTerminated() bool {
	return r.core.isTerminated()
}

// Terminated returns a channel closed once the actor has terminated
func (r *Reference) Terminated() <-chan struct{} {
	return r.core.terminated
}

// DeadLetterRouting returns where the messages rejected by this actor are sent
func (r *Reference) DeadLetterRouting() *Reference {
	return r.core.deadLetters
}

// Equals reports whether both references point at the same actor
func (r *Reference) Equals(other *Reference) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.core == other.core
}

// String returns a printable form of the reference
func (r *Reference) String() string {
	if r == nil {
		return NoSender
	}
	return fmt.Sprintf("Reference(%s)", r.core.path)
}

func (r *Reference) send(message any, fut *future.Future, sender *Reference) {
	r.core.onEnvelope(newEnvelope(message, fut, sender, r))
}
