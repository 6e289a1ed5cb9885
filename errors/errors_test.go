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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestErrors(t *testing.T) {
	t.Run("ActorTerminatedError", func(t *testing.T) {
		err := NewActorTerminatedError("/counter")
		require.EqualError(t, err, "actor=(/counter) actor is terminated")
		assert.Equal(t, "/counter", err.Path())
		assert.ErrorIs(t, err, ErrActorTerminated)
		assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), ErrActorTerminated)
		assert.NotErrorIs(t, err, ErrUnknownMessage)
	})
	t.Run("UnknownMessageError", func(t *testing.T) {
		err := NewUnknownMessageError(42)
		require.EqualError(t, err, "unknown message: 42 (int)")
		assert.Equal(t, 42, err.Message())
		assert.ErrorIs(t, err, ErrUnknownMessage)

		var target *UnknownMessageError
		require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &target)
		assert.Equal(t, 42, target.Message())
	})
	t.Run("SpawnError", func(t *testing.T) {
		err := errors.New("something went wrong")
		spawnErr := NewSpawnError(err)
		require.EqualError(t, spawnErr, "spawn error: something went wrong")
		assert.ErrorIs(t, spawnErr, err)
	})
	t.Run("PanicError", func(t *testing.T) {
		err := errors.New("boom")
		panicErr := NewPanicError(err)
		require.EqualError(t, panicErr, "panic: boom")
		assert.ErrorIs(t, panicErr, err)
	})
	t.Run("Constructors", func(t *testing.T) {
		assert.ErrorIs(t, NewErrInvalidName("a/b"), ErrInvalidName)
		assert.ErrorIs(t, NewErrInvalidBehaviourDefinition("empty"), ErrInvalidBehaviourDefinition)
		assert.ErrorIs(t, NewErrInitFailure(errors.New("x")), ErrInitFailure)

		err := NewErrInvalidSupervision(stringer("Resume"), stringer("OneForAll"))
		require.EqualError(t, err, "(directive=Resume, strategy=OneForAll) invalid supervision directive and strategy combination")
		assert.ErrorIs(t, err, ErrInvalidSupervision)
	})
}
