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

	"github.com/tochemey/troupe/supervisor"
)

const (
	rootName        = "/"
	deadLettersName = "dead_letters"
)

// rootActor is the actor at "/". It spawns the top level actors on behalf
// of the actor system and resets the ones it supervises when they pause.
type rootActor struct{}

// enforce compilation error
var (
	_ Actor             = (*rootActor)(nil)
	_ BehaviourProvider = (*rootActor)(nil)
)

func (x *rootActor) BehaviourDefinition() BehaviourDefinition {
	return concat(
		BaseBehaviours(),
		LinkingBehaviours(),
		SupervisingBehaviours(supervisor.NewSupervisor()),
		UserMessageBehaviours(JustLog),
	)
}

func (x *rootActor) OnMessage(ctx *ActorContext, message any) (any, error) {
	switch msg := message.(type) {
	case *spawnRequest:
		return ctx.Spawn(msg.name, msg.producer, msg.opts...)
	case Event:
		// lifecycle events of the linked top level actors
		return nil, nil
	default:
		return ctx.Pass()
	}
}

// deadLetterActor logs and counts the envelopes rejected without a future.
// Every dead letter is published on the DeadLetterTopic.
type deadLetterActor struct {
	total     int64
	byAddress map[string]int64
}

// enforce compilation error
var (
	_ Actor             = (*deadLetterActor)(nil)
	_ BehaviourProvider = (*deadLetterActor)(nil)
)

func newDeadLetterActor() Actor {
	return &deadLetterActor{byAddress: make(map[string]int64)}
}

// BehaviourDefinition keeps the actor alive whatever it receives
func (x *deadLetterActor) BehaviourDefinition() BehaviourDefinition {
	return concat(
		BaseBehaviours(),
		LinkingBehaviours(),
		UserMessageBehaviours(JustLog),
	)
}

func (x *deadLetterActor) OnMessage(ctx *ActorContext, message any) (any, error) {
	switch msg := message.(type) {
	case *DeadLetter:
		x.handle(ctx, msg)
		return nil, nil
	case *deadLettersCount:
		if msg.address == "" {
			return x.total, nil
		}
		return x.byAddress[msg.address], nil
	default:
		return ctx.Pass()
	}
}

func (x *deadLetterActor) handle(ctx *ActorContext, letter *DeadLetter) {
	address := letter.Envelope.AddressPath()
	ctx.Logger().Warnf("dead letter %s: %v", letter.Envelope, letter.Reason)

	x.total++
	x.byAddress[address]++

	system := ctx.core.system
	system.eventsStream.Publish(DeadLetterTopic, letter)
	if system.metrics != nil {
		system.metrics.RecordDeadLetter(context.Background(), address)
	}
}
