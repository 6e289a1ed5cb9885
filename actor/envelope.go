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

	"github.com/tochemey/troupe/future"
)

// NoSender is how an envelope sent from outside any actor prints its sender
const NoSender = "NoSender"

// Envelope carries a message to its address. It is immutable.
type Envelope struct {
	message any
	future  *future.Future
	sender  *Reference
	address *Reference
}

func newEnvelope(message any, fut *future.Future, sender, address *Reference) *Envelope {
	return &Envelope{
		message: message,
		future:  fut,
		sender:  sender,
		address: address,
	}
}

// Message returns the carried message
func (e *Envelope) Message() any {
	return e.message
}

// Future returns the future completed with the result, nil for a tell
func (e *Envelope) Future() *future.Future {
	return e.future
}

// Sender returns the sending actor, nil when sent from outside any actor
func (e *Envelope) Sender() *Reference {
	return e.sender
}

// Address returns the receiving actor
func (e *Envelope) Address() *Reference {
	return e.address
}

// SenderPath returns the sender path or NoSender
func (e *Envelope) SenderPath() string {
	if e.sender == nil {
		return NoSender
	}
	return e.sender.Path()
}

// AddressPath returns the address path
func (e *Envelope) AddressPath() string {
	if e.address == nil {
		return ""
	}
	return e.address.Path()
}

// Reject fails the future with the given reason.
// It reports false when there is no future or it was already completed.
func (e *Envelope) Reject(reason error) bool {
	if e.future == nil {
		return false
	}
	return e.future.Failure(reason)
}

// String returns a printable form of the envelope
func (e *Envelope) String() string {
	return fmt.Sprintf("%v from %s to %s", e.message, e.SenderPath(), e.AddressPath())
}
