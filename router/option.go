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
	"github.com/tochemey/troupe/supervisor"
)

// Option is the interface that applies a Pool option.
type Option interface {
	// Apply sets the Option value of a pool.
	Apply(pool *Pool)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(pool *Pool)

// Apply applies the option to the pool
func (f OptionFunc) Apply(pool *Pool) {
	f(pool)
}

// WithRoutingStrategy sets how the pool picks workers. Balancing is the default.
func WithRoutingStrategy(strategy RoutingStrategy) Option {
	return OptionFunc(func(pool *Pool) {
		pool.strategy = strategy
	})
}

// WithSupervisor sets how the pool handles a failing worker.
// Workers are reset one for one by default.
func WithSupervisor(sup *supervisor.Supervisor) Option {
	return OptionFunc(func(pool *Pool) {
		if sup != nil {
			pool.supervisor = sup
		}
	})
}
