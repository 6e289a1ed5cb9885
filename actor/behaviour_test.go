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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/troupe/errors"
	"github.com/tochemey/troupe/supervisor"
)

func TestBehaviourDefinition(t *testing.T) {
	t.Run("With the predefined definitions", func(t *testing.T) {
		require.NoError(t, BasicBehaviourDefinition().Validate())
		require.NoError(t, RestartingBehaviourDefinition(nil).Validate())
		require.NoError(t, RestartingBehaviourDefinition(supervisor.NewSupervisor(
			supervisor.WithDirective(supervisor.RestartDirective),
			supervisor.WithStrategy(supervisor.OneForAllStrategy))).Validate())

		basic := BasicBehaviourDefinition()
		assert.Equal(t, BufferKind, basic[0].Kind())
		assert.Equal(t, ErrorsOnUnknownMessageKind, basic[len(basic)-1].Kind())
		assert.True(t, basic.Has(LinkingKind))
		assert.False(t, basic.Has(PausingKind))
	})
	t.Run("With invalid definitions", func(t *testing.T) {
		testCases := []struct {
			name       string
			definition BehaviourDefinition
		}{
			{"empty", BehaviourDefinition{}},
			{"duplicate", concat(BaseBehaviours(), BehaviourDefinition{Linking(), Linking()}, UserMessageBehaviours(JustLog))},
			{"no termination", concat(BehaviourDefinition{Buffer()}, UserMessageBehaviours(JustLog))},
			{"no set results", concat(BaseBehaviours(), BehaviourDefinition{ExecutesContext(), ErrorsOnUnknownMessage()})},
			{"wrong tail", concat(BaseBehaviours(), BehaviourDefinition{SetResults(JustLog), ErrorsOnUnknownMessage(), ExecutesContext()})},
			{"pause without pausing", concat(BaseBehaviours(), LinkingBehaviours(), UserMessageBehaviours(PauseOnError))},
			{"supervised without pausing", concat(BaseBehaviours(), LinkingBehaviours(), BehaviourDefinition{Supervised()}, UserMessageBehaviours(JustLog))},
			{"nil supervisor", concat(BaseBehaviours(), SupervisingBehaviours(nil), UserMessageBehaviours(JustLog))},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				err := tc.definition.Validate()
				require.Error(t, err)
				assert.ErrorIs(t, err, gerrors.ErrInvalidBehaviourDefinition)
			})
		}
	})
	t.Run("With an invalid supervisor", func(t *testing.T) {
		definition := concat(BaseBehaviours(), SupervisingBehaviours(supervisor.NewSupervisor(
			supervisor.WithDirective(supervisor.TerminateDirective),
			supervisor.WithStrategy(supervisor.OneForAllStrategy))), UserMessageBehaviours(JustLog))

		assert.ErrorIs(t, definition.Validate(), gerrors.ErrInvalidSupervision)
	})
}

func TestPausing(t *testing.T) {
	// the parent relays the supervision controls to its supervised child
	supervisedChild := func(t *testing.T) (parentRef, child *Reference) {
		system := newTestSystem(t)
		parentRef = spawn(t, system, "parent",
			newParent(newCounter, WithBehaviourDefinition(RestartingBehaviourDefinition(nil)), WithSupervise()))
		child = mustAsk(t, parentRef, spawnKid{name: "child"}).(*Reference)
		assert.Equal(t, parentRef, mustAsk(t, child, CurrentSupervisor))
		return parentRef, child
	}

	t.Run("With buffered messages replayed in order on resume", func(t *testing.T) {
		parentRef, child := supervisedChild(t)

		assert.Equal(t, true, mustAsk(t, parentRef, relay{to: child, control: Pause}))
		child.Tell(1).Tell(2).Tell(3)
		pending := child.Ask(get{})

		<-time.After(50 * time.Millisecond)
		assert.False(t, pending.IsCompleted())

		mustAsk(t, parentRef, relay{to: child, control: Resume})

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		result, err := pending.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, 6, result)

		require.Eventually(t, func() bool {
			events := mustAsk(t, parentRef, recorded{}).([]Event)
			return len(events) == 2 &&
				events[0].Kind == PausedEvent &&
				events[1].Kind == ResumedEvent
		}, askTimeout, 10*time.Millisecond)
	})
	t.Run("With controls of a non supervisor ignored while paused", func(t *testing.T) {
		system := newTestSystem(t)
		parentRef := spawn(t, system, "parent",
			newParent(newRecorder, WithBehaviourDefinition(RestartingBehaviourDefinition(nil)), WithSupervise()))
		child := mustAsk(t, parentRef, spawnKid{name: "child"}).(*Reference)

		mustAsk(t, parentRef, relay{to: child, control: Pause})
		child.Tell("a").Tell("b").Tell("c")

		assert.Equal(t, false, mustAsk(t, child, Resume))
		assert.Equal(t, false, mustAsk(t, child, Pause))

		pending := child.Ask(get{})
		<-time.After(50 * time.Millisecond)
		assert.False(t, pending.IsCompleted())

		mustAsk(t, parentRef, relay{to: child, control: Resume})

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		result, err := pending.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b", "c"}, result)
	})
	t.Run("With supervision controls only accepted from the supervisor", func(t *testing.T) {
		_, child := supervisedChild(t)

		for _, control := range []Control{Pause, Resume, Reset, Restart} {
			assert.Equal(t, false, mustAsk(t, child, control), control.String())
		}
		assert.Equal(t, false, mustAsk(t, child, UnSupervise))

		child.Tell(2)
		assert.Equal(t, 2, mustAsk(t, child, get{}))
	})
	t.Run("With restart dropping the buffered messages", func(t *testing.T) {
		parentRef, child := supervisedChild(t)

		child.Tell(4)
		mustAsk(t, parentRef, relay{to: child, control: Pause})
		dropped := child.Ask(5)
		mustAsk(t, parentRef, relay{to: child, control: Restart})

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		_, err := dropped.Await(ctx)
		assert.ErrorIs(t, err, gerrors.ErrMessageDropped)
		assert.Equal(t, 0, mustAsk(t, child, get{}))
	})
	t.Run("With reset rebuilding the state and replaying the buffer", func(t *testing.T) {
		parentRef, child := supervisedChild(t)

		child.Tell(4)
		mustAsk(t, parentRef, relay{to: child, control: Pause})
		child.Tell(5)
		mustAsk(t, parentRef, relay{to: child, control: Reset})

		assert.Equal(t, 5, mustAsk(t, child, get{}))
	})
	t.Run("With a failure pausing the actor", func(t *testing.T) {
		parentRef, child := supervisedChild(t)

		child.Tell(3)
		_, err := askSync(t, child, fail{})
		assert.ErrorIs(t, err, errFailure)

		require.Eventually(t, func() bool {
			events := mustAsk(t, parentRef, recorded{}).([]Event)
			return len(events) == 1 && events[0].Kind == PausedEvent && events[0].Cause != nil
		}, askTimeout, 10*time.Millisecond)

		pending := child.Ask(get{})
		mustAsk(t, parentRef, relay{to: child, control: Resume})

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		result, err := pending.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, result)
	})
	t.Run("With the buffer rejected on termination", func(t *testing.T) {
		parentRef, child := supervisedChild(t)

		mustAsk(t, parentRef, relay{to: child, control: Pause})
		pending := child.Ask(get{})
		mustAsk(t, parentRef, relay{to: child, control: Terminate})
		awaitTermination(t, child)

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		_, err := pending.Await(ctx)
		assert.ErrorIs(t, err, gerrors.ErrActorTerminated)
	})
	t.Run("With unsupervise", func(t *testing.T) {
		parentRef, child := supervisedChild(t)

		mustAsk(t, parentRef, relay{to: child, control: UnSupervise})
		require.Eventually(t, func() bool {
			return mustAsk(t, child, CurrentSupervisor) == (*Reference)(nil)
		}, askTimeout, 10*time.Millisecond)
	})
}

func TestSupervising(t *testing.T) {
	supervising := func(t *testing.T, sup *supervisor.Supervisor) *Reference {
		system := newTestSystem(t)
		return spawn(t, system, "parent",
			newParent(newCounter, WithBehaviourDefinition(RestartingBehaviourDefinition(nil)), WithSupervise()),
			WithBehaviourDefinition(RestartingBehaviourDefinition(sup)))
	}

	testCases := []struct {
		name      string
		directive supervisor.Directive
		expected  int
	}{
		{"With resume", supervisor.ResumeDirective, 5},
		{"With reset", supervisor.ResetDirective, 0},
		{"With restart", supervisor.RestartDirective, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parentRef := supervising(t, supervisor.NewSupervisor(supervisor.WithDirective(tc.directive)))
			child := mustAsk(t, parentRef, spawnKid{name: "child"}).(*Reference)

			child.Tell(5)
			_, err := askSync(t, child, fail{})
			assert.ErrorIs(t, err, errFailure)

			// a restart drops what was sent while the child was paused
			require.Eventually(t, func() bool {
				result, err := askSync(t, child, get{})
				return err == nil && result == tc.expected
			}, askTimeout, 10*time.Millisecond)
			assert.False(t, child.IsTerminated())
		})
	}

	t.Run("With one for one leaving the siblings untouched", func(t *testing.T) {
		parentRef := supervising(t, supervisor.NewSupervisor(supervisor.WithDirective(supervisor.ResetDirective)))

		first := mustAsk(t, parentRef, spawnKid{name: "first"}).(*Reference)
		second := mustAsk(t, parentRef, spawnKid{name: "second"}).(*Reference)

		first.Tell(5)
		second.Tell(7)
		assert.Equal(t, 7, mustAsk(t, second, get{}))

		_, err := askSync(t, first, fail{})
		assert.ErrorIs(t, err, errFailure)

		require.Eventually(t, func() bool {
			result, err := askSync(t, first, get{})
			return err == nil && result == 0
		}, askTimeout, 10*time.Millisecond)
		assert.Equal(t, 7, mustAsk(t, second, get{}))
		assert.False(t, second.IsTerminated())
	})
	t.Run("With terminate", func(t *testing.T) {
		parentRef := supervising(t, supervisor.NewSupervisor(supervisor.WithDirective(supervisor.TerminateDirective)))
		child := mustAsk(t, parentRef, spawnKid{name: "child"}).(*Reference)

		_, err := askSync(t, child, fail{})
		assert.ErrorIs(t, err, errFailure)
		awaitTermination(t, child)
		assert.False(t, parentRef.IsTerminated())
	})
	t.Run("With one for all", func(t *testing.T) {
		parentRef := supervising(t, supervisor.NewSupervisor(
			supervisor.WithDirective(supervisor.ResetDirective),
			supervisor.WithStrategy(supervisor.OneForAllStrategy)))

		first := mustAsk(t, parentRef, spawnKid{name: "first"}).(*Reference)
		second := mustAsk(t, parentRef, spawnKid{name: "second"}).(*Reference)

		second.Tell(7)
		assert.Equal(t, 7, mustAsk(t, second, get{}))

		_, err := askSync(t, first, fail{})
		assert.ErrorIs(t, err, errFailure)

		require.Eventually(t, func() bool {
			return mustAsk(t, second, get{}) == 0
		}, askTimeout, 10*time.Millisecond)
	})
	t.Run("With top level actors supervised by the root", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "counter", newCounter,
			WithBehaviourDefinition(RestartingBehaviourDefinition(nil)), WithSupervise())

		assert.Equal(t, system.Root(), mustAsk(t, ref, CurrentSupervisor))

		ref.Tell(9)
		_, err := askSync(t, ref, boom{})
		require.Error(t, err)

		// the root resets the actor
		assert.Equal(t, 0, mustAsk(t, ref, get{}))
	})
}

func TestEventHandler(t *testing.T) {
	t.Run("With the lifecycle events of the actor", func(t *testing.T) {
		system := newTestSystem(t)
		parentRef := spawn(t, system, "parent",
			newParent(func() Actor { return new(eventWatcher) },
				WithBehaviourDefinition(RestartingBehaviourDefinition(nil)), WithSupervise()))

		child := mustAsk(t, parentRef, spawnKid{name: "watcher"}).(*Reference)
		mustAsk(t, parentRef, relay{to: child, control: Pause})
		mustAsk(t, parentRef, relay{to: child, control: Resume})

		assert.Equal(t, []EventKind{PausedEvent, ResumedEvent}, mustAsk(t, child, get{}))
	})
	t.Run("With a panicking handler on termination", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "fragile", newFragileCounter(TerminatedEvent))

		assert.Equal(t, true, mustAsk(t, ref, Terminate))
		awaitTermination(t, ref)

		require.Eventually(t, func() bool {
			for _, actor := range system.Actors() {
				if actor.Equals(ref) {
					return false
				}
			}
			return true
		}, askTimeout, 10*time.Millisecond)
	})
	t.Run("With a panicking handler on pause", func(t *testing.T) {
		system := newTestSystem(t)
		parentRef := spawn(t, system, "parent",
			newParent(newFragileCounter(PausedEvent),
				WithBehaviourDefinition(RestartingBehaviourDefinition(nil)), WithSupervise()))
		child := mustAsk(t, parentRef, spawnKid{name: "fragile"}).(*Reference)

		child.Tell(2)
		_, err := askSync(t, child, fail{})
		assert.ErrorIs(t, err, errFailure)

		require.Eventually(t, func() bool {
			events := mustAsk(t, parentRef, recorded{}).([]Event)
			return len(events) == 1 && events[0].Kind == PausedEvent
		}, askTimeout, 10*time.Millisecond)

		pending := child.Ask(get{})
		mustAsk(t, parentRef, relay{to: child, control: Resume})

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		result, err := pending.Await(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, result)
	})
}

// fragileCounter is a counter whose event handler panics on the given event
type fragileCounter struct {
	counter
	panicOn EventKind
}

var _ EventHandler = (*fragileCounter)(nil)

func newFragileCounter(kind EventKind) Producer {
	return func() Actor {
		return &fragileCounter{panicOn: kind}
	}
}

func (x *fragileCounter) OnEvent(_ *ActorContext, event Event) {
	if event.Kind == x.panicOn {
		panic("fragile")
	}
}

// eventWatcher records the lifecycle events of its own actor
type eventWatcher struct {
	mu    sync.Mutex
	kinds []EventKind
}

var (
	_ Actor        = (*eventWatcher)(nil)
	_ EventHandler = (*eventWatcher)(nil)
)

func (x *eventWatcher) OnEvent(_ *ActorContext, event Event) {
	x.mu.Lock()
	x.kinds = append(x.kinds, event.Kind)
	x.mu.Unlock()
}

func (x *eventWatcher) OnMessage(ctx *ActorContext, message any) (any, error) {
	if _, ok := message.(get); ok {
		x.mu.Lock()
		defer x.mu.Unlock()
		return append([]EventKind(nil), x.kinds...), nil
	}
	return ctx.Pass()
}
