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
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/tochemey/troupe/actor"
	gerrors "github.com/tochemey/troupe/errors"
	"github.com/tochemey/troupe/supervisor"
)

const balancerName = "balancer"

// ErrNoWorker is returned when a Pool has no live worker left
var ErrNoWorker = errors.New("no worker available")

// Pool spawns a fixed number of supervised workers and routes the messages
// it receives to them. The future of an ask travels with the message, so
// the worker answers the asker directly.
//
// Workers and the balancer survive a reset of the pool.
type Pool struct {
	size       int
	work       actor.ReceiveFunc
	strategy   RoutingStrategy
	supervisor *supervisor.Supervisor

	balancer *actor.Reference
	workers  []*actor.Reference
	next     int
}

// enforce compilation error
var (
	_ actor.Actor             = (*Pool)(nil)
	_ actor.PreStarter        = (*Pool)(nil)
	_ actor.BehaviourProvider = (*Pool)(nil)
)

// NewPool returns the producer of a Pool of size workers running the given function
func NewPool(size int, work actor.ReceiveFunc, opts ...Option) actor.Producer {
	return func() actor.Actor {
		pool := &Pool{
			size:       size,
			work:       work,
			strategy:   BalancingStrategy,
			supervisor: supervisor.NewSupervisor(),
		}

		for _, opt := range opts {
			opt.Apply(pool)
		}
		return pool
	}
}

// BehaviourDefinition makes the Pool a restarting actor supervising its workers
func (x *Pool) BehaviourDefinition() actor.BehaviourDefinition {
	return actor.RestartingBehaviourDefinition(x.supervisor)
}

// PreStart spawns the missing workers, and the balancer when balancing
func (x *Pool) PreStart(ctx *actor.ActorContext) error {
	if x.size <= 0 {
		return gerrors.ErrInvalidPoolSize
	}
	if x.work == nil {
		return gerrors.ErrProducerRequired
	}

	existing := make(map[string]*actor.Reference)
	for _, child := range ctx.Children() {
		existing[child.Name()] = child
	}

	x.balancer = nil
	if x.strategy == BalancingStrategy {
		balancer, err := spawnOrReuse(ctx, existing, balancerName, NewBalancer())
		if err != nil {
			return err
		}
		x.balancer = balancer
	}

	x.workers = make([]*actor.Reference, 0, x.size)
	for index := range x.size {
		name := fmt.Sprintf("worker-%d", index)
		worker, err := spawnOrReuse(ctx, existing, name, NewWorker(x.balancer, x.work))
		if err != nil {
			return err
		}
		x.workers = append(x.workers, worker)
	}
	return nil
}

// OnMessage handles messages
func (x *Pool) OnMessage(ctx *actor.ActorContext, message any) (any, error) {
	switch msg := message.(type) {
	case actor.Event:
		if msg.Kind == actor.TerminatedEvent {
			x.forget(ctx.Sender())
		}
		return nil, nil
	case Broadcast:
		for _, worker := range x.workers {
			ctx.Tell(worker, msg.Message)
		}
		return len(x.workers), nil
	}

	if x.strategy == BalancingStrategy {
		return ctx.Redirect(x.balancer)
	}

	if len(x.workers) == 0 {
		return nil, ErrNoWorker
	}

	var worker *actor.Reference
	switch x.strategy {
	case RandomStrategy:
		worker = x.workers[rand.IntN(len(x.workers))]
	default:
		worker = x.workers[x.next%len(x.workers)]
		x.next++
	}
	return ctx.Redirect(worker)
}

func (x *Pool) forget(ref *actor.Reference) {
	for index, worker := range x.workers {
		if worker.Equals(ref) {
			x.workers = append(x.workers[:index], x.workers[index+1:]...)
			return
		}
	}
}

func spawnOrReuse(ctx *actor.ActorContext, existing map[string]*actor.Reference, name string, producer actor.Producer) (*actor.Reference, error) {
	if ref, ok := existing[name]; ok && !ref.IsTerminated() {
		return ref, nil
	}
	return ctx.Spawn(name, producer, actor.WithSupervise())
}
