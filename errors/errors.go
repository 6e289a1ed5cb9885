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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrActorTerminated is returned when a message reaches an actor that has been terminated.
	// Futures of asks sent to a terminated actor are failed with an error matching it.
	ErrActorTerminated = errors.New("actor is terminated")

	// ErrUnknownMessage is returned when a message traverses the whole behaviour chain without being handled.
	ErrUnknownMessage = errors.New("unknown message")

	// ErrOutsideActorTurn is raised when actor-owned state is touched outside of the actor's own execution turn.
	ErrOutsideActorTurn = errors.New("actor state accessed outside of its execution turn")

	// ErrExecutorStopped is returned when an executor refuses work because it has been stopped.
	ErrExecutorStopped = errors.New("executor is stopped")

	// ErrNameRequired is returned when an actor system name is required but not provided.
	ErrNameRequired = errors.New("actor system name is required")

	// ErrInvalidName is returned when an actor name is empty or contains a path separator.
	ErrInvalidName = errors.New("invalid actor name")

	// ErrProducerRequired is returned when an actor is spawned without a producer.
	ErrProducerRequired = errors.New("actor producer is required")

	// ErrInvalidBehaviourDefinition is returned when a behaviour definition cannot be assembled into a chain.
	ErrInvalidBehaviourDefinition = errors.New("invalid behaviour definition")

	// ErrInvalidSupervision is returned when a supervision directive is combined with an unsupported strategy.
	ErrInvalidSupervision = errors.New("invalid supervision directive and strategy combination")

	// ErrInitFailure is returned when the actor's PreStart hook fails during initialization.
	ErrInitFailure = errors.New("preStart failed")

	// ErrActorSystemNotStarted indicates that an actor system has not been started before use.
	ErrActorSystemNotStarted = errors.New("actor system is not running")

	// ErrActorSystemAlreadyStarted is returned when attempting to start an actor system that is already running.
	ErrActorSystemAlreadyStarted = errors.New("actor system has already started")

	// ErrSchedulerNotStarted is returned when attempting to use the scheduler before it has started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrInvalidTimeout is returned when a timeout value is less than or equal to zero.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidPoolSize is returned when a pool is created with no worker.
	ErrInvalidPoolSize = errors.New("pool size must be greater than zero")

	// ErrShutdownTimeout is returned when actors did not terminate within the shutdown timeout.
	ErrShutdownTimeout = errors.New("shutdown timed out")

	// ErrMessageDropped is returned for messages buffered by a paused actor that is then restarted.
	ErrMessageDropped = errors.New("message dropped on restart")
)

// NewErrInvalidName formats an ErrInvalidName with the given name.
func NewErrInvalidName(name string) error {
	return fmt.Errorf("name=(%s) %w", name, ErrInvalidName)
}

// NewErrInvalidBehaviourDefinition wraps the reason a definition was rejected.
func NewErrInvalidBehaviourDefinition(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidBehaviourDefinition, reason)
}

// NewErrInvalidSupervision formats an ErrInvalidSupervision for the given combination.
func NewErrInvalidSupervision(directive, strategy fmt.Stringer) error {
	return fmt.Errorf("(directive=%s, strategy=%s) %w", directive, strategy, ErrInvalidSupervision)
}

// NewErrInitFailure wraps a base error with ErrInitFailure to indicate a startup failure.
func NewErrInitFailure(err error) error {
	return errors.Join(ErrInitFailure, err)
}

// ActorTerminatedError is the rejection reason of an envelope addressed to a terminated actor.
type ActorTerminatedError struct {
	path string
}

// enforce compilation error
var _ error = (*ActorTerminatedError)(nil)

// NewActorTerminatedError creates an ActorTerminatedError for the actor at the given path
func NewActorTerminatedError(path string) *ActorTerminatedError {
	return &ActorTerminatedError{path: path}
}

// Path returns the path of the terminated actor
func (e *ActorTerminatedError) Path() string {
	return e.path
}

// Error implements the standard error interface
func (e *ActorTerminatedError) Error() string {
	return fmt.Sprintf("actor=(%s) %s", e.path, ErrActorTerminated.Error())
}

// Is makes errors.Is(err, ErrActorTerminated) hold
func (e *ActorTerminatedError) Is(target error) bool {
	return target == ErrActorTerminated
}

// UnknownMessageError carries the message no behaviour handled.
type UnknownMessageError struct {
	message any
}

// enforce compilation error
var _ error = (*UnknownMessageError)(nil)

// NewUnknownMessageError creates an UnknownMessageError
func NewUnknownMessageError(message any) *UnknownMessageError {
	return &UnknownMessageError{message: message}
}

// Message returns the unhandled message
func (e *UnknownMessageError) Message() any {
	return e.message
}

// Error implements the standard error interface
func (e *UnknownMessageError) Error() string {
	return fmt.Sprintf("%s: %v (%T)", ErrUnknownMessage.Error(), e.message, e.message)
}

// Is makes errors.Is(err, ErrUnknownMessage) hold
func (e *UnknownMessageError) Is(target error) bool {
	return target == ErrUnknownMessage
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// SpawnError defines an error when creating an actor
type SpawnError struct {
	err error
}

var _ error = (*SpawnError)(nil)

// NewSpawnError returns an instance of SpawnError
func NewSpawnError(err error) *SpawnError {
	return &SpawnError{
		err: fmt.Errorf("spawn error: %w", err),
	}
}

// Error implements the standard error interface
func (s *SpawnError) Error() string {
	return s.err.Error()
}

func (s *SpawnError) Unwrap() error {
	return s.err
}
