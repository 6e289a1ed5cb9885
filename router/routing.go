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

// Package router distributes messages over a pool of supervised workers.
package router

import (
	"fmt"
)

// RoutingStrategy defines how a Pool picks the worker handling a message
type RoutingStrategy int

const (
	// BalancingStrategy hands every message to an idle worker. Workers take
	// one message at a time from a Balancer and ask for the next one when done.
	BalancingStrategy RoutingStrategy = iota
	// RoundRobinStrategy rotates over the set of workers making sure that if there are n workers,
	// then for n messages sent through the pool, each worker is forwarded one message.
	RoundRobinStrategy
	// RandomStrategy selects a worker at random when a message is sent through the pool.
	RandomStrategy
)

// String returns the name of the routing strategy
func (s RoutingStrategy) String() string {
	switch s {
	case BalancingStrategy:
		return "Balancing"
	case RoundRobinStrategy:
		return "RoundRobin"
	case RandomStrategy:
		return "Random"
	default:
		return fmt.Sprintf("RoutingStrategy(%d)", int(s))
	}
}

// Broadcast is sent to a Pool to deliver the wrapped message to every worker.
// The pool answers with the number of workers the message was sent to.
type Broadcast struct {
	Message any
}

// Subscribe is sent by a worker to a Balancer when it is ready for a message
type Subscribe struct{}

// Unsubscribe is sent by a worker to a Balancer to stop receiving messages
type Unsubscribe struct{}

// Subscribed asks a Balancer whether the sender is waiting for a message
type Subscribed struct{}
