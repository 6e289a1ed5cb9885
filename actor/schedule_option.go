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
	"github.com/google/uuid"
)

type scheduleConfig struct {
	sender    *Reference
	reference string
}

// newScheduleConfig creates a scheduleConfig with a random reference
func newScheduleConfig(opts ...ScheduleOption) *scheduleConfig {
	config := &scheduleConfig{
		reference: uuid.NewString(),
	}

	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// ScheduleOption defines an interface for applying configuration options to a scheduleConfig instance
type ScheduleOption interface {
	// Apply sets the Option value of a config.
	Apply(*scheduleConfig)
}

// enforce compilation error
var _ ScheduleOption = ScheduleOptionFunc(nil)

// ScheduleOptionFunc implements the ScheduleOption interface.
type ScheduleOptionFunc func(*scheduleConfig)

// Apply applies the ScheduleOptionFunc to the given scheduleConfig instance
func (f ScheduleOptionFunc) Apply(c *scheduleConfig) {
	f(c)
}

// WithSender sets the sender of the scheduled message.
// Scheduled messages have no sender by default.
func WithSender(sender *Reference) ScheduleOption {
	return ScheduleOptionFunc(func(c *scheduleConfig) {
		c.sender = sender
	})
}

// WithReference sets the reference used to cancel the scheduled message.
// A random one is generated by default.
func WithReference(reference string) ScheduleOption {
	return ScheduleOptionFunc(func(c *scheduleConfig) {
		c.reference = reference
	})
}
