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

// Package supervisor defines how a supervising actor reacts when one of its
// supervised children pauses on a failure.
package supervisor

import (
	gerrors "github.com/tochemey/troupe/errors"
)

// Strategy represents which children receive the supervisor's directive.
type Strategy int

const (
	// OneForOneStrategy sends the directive only to the child that paused.
	OneForOneStrategy Strategy = iota
	// OneForAllStrategy sends the directive to every child of the supervisor,
	// whichever child paused.
	OneForAllStrategy
)

// String returns the string representation of the strategy
func (s Strategy) String() string {
	switch s {
	case OneForOneStrategy:
		return "OneForOne"
	case OneForAllStrategy:
		return "OneForAll"
	default:
		return ""
	}
}

// Directive is the control message a supervisor sends to the children selected by its Strategy.
type Directive int

const (
	// TerminateDirective terminates the paused child.
	TerminateDirective Directive = iota
	// ResumeDirective resumes the paused child with its current state.
	// The messages buffered while paused are replayed in order.
	ResumeDirective
	// ResetDirective rebuilds the child's state from its producer, then resumes it.
	// The messages buffered while paused are replayed in order.
	ResetDirective
	// RestartDirective rebuilds the child's state and drops the buffered messages.
	RestartDirective
)

// String returns the string representation of the directive
func (d Directive) String() string {
	switch d {
	case TerminateDirective:
		return "Terminate"
	case ResumeDirective:
		return "Resume"
	case ResetDirective:
		return "Reset"
	case RestartDirective:
		return "Restart"
	default:
		return ""
	}
}

// SupervisorOption defines the supervisor option
type SupervisorOption func(*Supervisor)

// WithStrategy sets the supervisor strategy
func WithStrategy(strategy Strategy) SupervisorOption {
	return func(s *Supervisor) {
		s.strategy = strategy
	}
}

// WithDirective sets the directive sent to paused children
func WithDirective(directive Directive) SupervisorOption {
	return func(s *Supervisor) {
		s.directive = directive
	}
}

// Supervisor pairs a Directive with a Strategy.
type Supervisor struct {
	directive Directive
	strategy  Strategy
}

// NewSupervisor creates a Supervisor. The defaults are ResetDirective and OneForOneStrategy.
func NewSupervisor(opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		directive: ResetDirective,
		strategy:  OneForOneStrategy,
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Directive returns the configured directive
func (s *Supervisor) Directive() Directive {
	return s.directive
}

// Strategy returns the configured strategy
func (s *Supervisor) Strategy() Strategy {
	return s.strategy
}

// Validate checks the directive and strategy can be combined.
// Terminate and Resume only apply to the paused child; Reset and Restart accept both strategies.
func (s *Supervisor) Validate() error {
	switch s.directive {
	case TerminateDirective, ResumeDirective:
		if s.strategy == OneForOneStrategy {
			return nil
		}
	case ResetDirective, RestartDirective:
		if s.strategy == OneForOneStrategy || s.strategy == OneForAllStrategy {
			return nil
		}
	}
	return gerrors.NewErrInvalidSupervision(s.directive, s.strategy)
}
