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

package router

import (
	"slices"

	"github.com/tochemey/troupe/actor"
)

// Balancer distributes messages between subscribed actors. Each subscriber
// gets a single message and is then unsubscribed: it has to subscribe again
// once ready for the next one. Messages wait until a subscriber is available.
//
// The envelope future travels with the message, so the subscriber answers
// the original asker.
type Balancer struct {
	receivers []*actor.Reference
	pending   []*actor.Envelope
}

// enforce compilation error
var (
	_ actor.Actor             = (*Balancer)(nil)
	_ actor.BehaviourProvider = (*Balancer)(nil)
)

// NewBalancer returns the producer of a Balancer
func NewBalancer() actor.Producer {
	return func() actor.Actor {
		return new(Balancer)
	}
}

// BehaviourDefinition makes the Balancer a restarting actor
func (x *Balancer) BehaviourDefinition() actor.BehaviourDefinition {
	return actor.RestartingBehaviourDefinition(nil)
}

// OnMessage handles messages
func (x *Balancer) OnMessage(ctx *actor.ActorContext, message any) (any, error) {
	switch message.(type) {
	case Subscribe:
		if sender := ctx.Sender(); sender != nil && !slices.Contains(x.receivers, sender) {
			x.receivers = append(x.receivers, sender)
		}
		x.distribute(ctx)
		return true, nil
	case Unsubscribe:
		x.receivers = slices.DeleteFunc(x.receivers, ctx.Sender().Equals)
		return true, nil
	case Subscribed:
		return slices.Contains(x.receivers, ctx.Sender()), nil
	case actor.Event:
		return nil, nil
	default:
		x.pending = append(x.pending, ctx.Envelope())
		x.distribute(ctx)
		return actor.MessageProcessed, nil
	}
}

func (x *Balancer) distribute(ctx *actor.ActorContext) {
	for len(x.receivers) > 0 && len(x.pending) > 0 {
		receiver := x.receivers[0]
		x.receivers = x.receivers[1:]
		if receiver.IsTerminated() {
			continue
		}

		envelope := x.pending[0]
		x.pending = x.pending[1:]
		_, _ = ctx.Forward(receiver, envelope)
	}
}
