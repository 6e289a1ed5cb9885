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
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/troupe/log"
)

const (
	// DefaultInitMaxRetries defines the default value for retrying actor initialization
	DefaultInitMaxRetries = 5
	// DefaultInitTimeout defines the default init timeout
	DefaultInitTimeout = time.Second
	// DefaultShutdownTimeout defines the default shutdown timeout
	DefaultShutdownTimeout = time.Minute
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(sys *actorSystem)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*actorSystem)

// Apply applies the option to the actor system
func (f OptionFunc) Apply(c *actorSystem) {
	f(c)
}

// WithLogger sets the actor system custom log
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(a *actorSystem) {
		a.logger = logger
	})
}

// WithExecutor sets the executor shared by the actors.
// The actor system does not stop an executor it did not create.
func WithExecutor(executor Executor) Option {
	return OptionFunc(func(a *actorSystem) {
		a.executor = executor
	})
}

// WithWorkers sets the number of goroutines of the default executor
func WithWorkers(workers int) Option {
	return OptionFunc(func(a *actorSystem) {
		a.workers = workers
	})
}

// WithInitMaxRetries sets the number of times to retry an actor init process
func WithInitMaxRetries(value int) Option {
	return OptionFunc(func(a *actorSystem) {
		a.initMaxRetries = value
	})
}

// WithInitTimeout sets how long an actor initialization may take
func WithInitTimeout(timeout time.Duration) Option {
	return OptionFunc(func(a *actorSystem) {
		a.initTimeout = timeout
	})
}

// WithShutdownTimeout sets how long Stop waits for the actors to terminate
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(a *actorSystem) {
		a.shutdownTimeout = timeout
	})
}

// WithMeterProvider sets the OpenTelemetry meter provider of the runtime metrics.
// The global provider is used by default.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(a *actorSystem) {
		a.meterProvider = provider
	})
}
