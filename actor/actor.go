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

// Package actor implements an actor runtime where every actor is a light core
// driving a chain of behaviours. Messages and lifecycle events flow through the
// chain, and each behaviour implements one concern: termination, linking,
// supervision, pausing, buffering or result collection.
//
// All the actors of a system share one executor. An actor never runs on two
// goroutines at a time, so its state needs no locking as long as it is only
// touched from within its own turn.
package actor

// Actor is the user logic of an actor.
//
// OnMessage is called for every message that reaches the end of the behaviour
// chain. The returned value completes the future of an ask, and a returned
// error (or a panic) is handled according to the actor's error strategy.
// Messages the actor does not handle should be given back to the chain with
// ctx.Pass() so that they fail with an unknown message error.
//
// Lifecycle events of linked actors are delivered to OnMessage as Event values.
// Events passed back to the chain are logged and ignored.
type Actor interface {
	OnMessage(ctx *ActorContext, message any) (any, error)
}

// PreStarter is implemented by actors that need initialization.
// PreStart runs in the actor's first turn and again every time the actor is
// reset or restarted. A failing PreStart is retried before the actor is terminated.
type PreStarter interface {
	PreStart(ctx *ActorContext) error
}

// EventHandler is implemented by actors that want to observe their own
// lifecycle events, such as PausedEvent or TerminatedEvent.
type EventHandler interface {
	OnEvent(ctx *ActorContext, event Event)
}

// BehaviourProvider is implemented by actors that define their own behaviour chain.
// The definition is read once, when the actor is spawned, and takes precedence
// over the default one. WithBehaviourDefinition takes precedence over both.
type BehaviourProvider interface {
	BehaviourDefinition() BehaviourDefinition
}

// Producer allocates a fresh Actor instance. It is called when the actor
// starts and every time it is reset or restarted.
type Producer func() Actor

// ReceiveFunc handles a message on behalf of a FuncActor
type ReceiveFunc func(ctx *ActorContext, message any) (any, error)

// FuncActor is an actor defined by a single function
type FuncActor struct {
	receive ReceiveFunc
}

// enforce compilation error
var _ Actor = (*FuncActor)(nil)

// OnMessage implements Actor
func (x *FuncActor) OnMessage(ctx *ActorContext, message any) (any, error) {
	return x.receive(ctx, message)
}

// AdHoc returns a Producer of actors handling messages with the given function.
// The function is shared by every instance so state kept in its closure
// survives resets.
func AdHoc(receive ReceiveFunc) Producer {
	return func() Actor {
		return &FuncActor{receive: receive}
	}
}
