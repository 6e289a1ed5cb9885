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
	"github.com/tochemey/troupe/actor"
)

// Worker runs a ReceiveFunc for the messages handed out by a Balancer.
// It subscribes to the balancer when it starts and after every message.
// Workers are restarting actors, meant to be supervised by a Pool.
type Worker struct {
	balancer *actor.Reference
	work     actor.ReceiveFunc
}

// enforce compilation error
var (
	_ actor.Actor             = (*Worker)(nil)
	_ actor.PreStarter        = (*Worker)(nil)
	_ actor.BehaviourProvider = (*Worker)(nil)
)

// NewWorker returns the producer of a Worker fed by the given balancer.
// A nil balancer makes a worker that only handles the messages sent to it.
func NewWorker(balancer *actor.Reference, work actor.ReceiveFunc) actor.Producer {
	return func() actor.Actor {
		return &Worker{balancer: balancer, work: work}
	}
}

// BehaviourDefinition makes the Worker a restarting actor
func (x *Worker) BehaviourDefinition() actor.BehaviourDefinition {
	return actor.RestartingBehaviourDefinition(nil)
}

// PreStart subscribes to the balancer. It runs again after every reset.
func (x *Worker) PreStart(ctx *actor.ActorContext) error {
	x.ready(ctx)
	return nil
}

// OnMessage handles messages
func (x *Worker) OnMessage(ctx *actor.ActorContext, message any) (any, error) {
	if _, ok := message.(actor.Event); ok {
		return nil, nil
	}

	defer x.ready(ctx)
	return x.work(ctx, message)
}

func (x *Worker) ready(ctx *actor.ActorContext) {
	if x.balancer != nil {
		ctx.Tell(x.balancer, Subscribe{})
	}
}
