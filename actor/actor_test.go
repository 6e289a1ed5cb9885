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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/troupe/errors"
	"github.com/tochemey/troupe/internal/lib"
)

func TestActor(t *testing.T) {
	t.Run("With tell and ask", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "counter", newCounter)

		assert.Equal(t, "/counter", ref.Path())
		assert.Equal(t, "counter", ref.Name())
		assert.True(t, ref.Parent().Equals(system.Root()))

		ref.Tell(5).Tell(3)
		assert.Equal(t, 8, mustAsk(t, ref, get{}))
	})
	t.Run("With messages handled in send order", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "recorder", newRecorder)

		expected := make([]any, 0, 100)
		for i := range 100 {
			ref.Tell(i)
			expected = append(expected, i)
		}

		assert.Equal(t, expected, mustAsk(t, ref, get{}))
	})
	t.Run("With a single message handled at a time", func(t *testing.T) {
		system := newTestSystem(t, WithWorkers(8))

		var (
			mu      sync.Mutex
			running int
			maximum int
		)
		ref := spawn(t, system, "serial", AdHoc(func(ctx *ActorContext, message any) (any, error) {
			mu.Lock()
			running++
			maximum = max(maximum, running)
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
			return nil, nil
		}))

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 10 {
					ref.Tell(i)
				}
			}()
		}
		wg.Wait()

		mustAsk(t, ref, Await)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, maximum)
	})
	t.Run("With an unknown message the basic actor terminates", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "counter", newCounter)

		_, err := askSync(t, ref, "unknown")
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrUnknownMessage)

		var unknown *gerrors.UnknownMessageError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "unknown", unknown.Message())

		awaitTermination(t, ref)
		assert.True(t, ref.IsTerminated())

		_, err = askSync(t, ref, get{})
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrActorTerminated)

		var terminated *gerrors.ActorTerminatedError
		require.True(t, errors.As(err, &terminated))
		assert.Equal(t, "/counter", terminated.Path())
	})
	t.Run("With a panic converted into an error", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "counter", newCounter)

		_, err := askSync(t, ref, boom{})
		require.Error(t, err)

		var panicErr *gerrors.PanicError
		assert.True(t, errors.As(err, &panicErr))
		awaitTermination(t, ref)
	})
	t.Run("With just log the actor survives failures", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "counter", newCounter,
			WithBehaviourDefinition(concat(BaseBehaviours(), LinkingBehaviours(), UserMessageBehaviours(JustLog))))

		ref.Tell(2)
		_, err := askSync(t, ref, fail{})
		assert.ErrorIs(t, err, errFailure)
		assert.Equal(t, 2, mustAsk(t, ref, get{}))
		assert.False(t, ref.IsTerminated())
	})
	t.Run("With terminate", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "counter", newCounter)

		assert.Equal(t, false, mustAsk(t, ref, IsTerminated))
		assert.Equal(t, true, mustAsk(t, ref, Terminate))
		awaitTermination(t, ref)

		// idempotent
		assert.Equal(t, true, mustAsk(t, ref, Terminate))
		assert.Equal(t, true, mustAsk(t, ref, IsTerminated))

		require.Eventually(t, func() bool {
			for _, actor := range system.Actors() {
				if actor.Equals(ref) {
					return false
				}
			}
			return true
		}, askTimeout, 10*time.Millisecond)
	})
	t.Run("With termination cascading to children", func(t *testing.T) {
		system := newTestSystem(t)
		parentRef := spawn(t, system, "parent", newParent(newCounter))

		child, ok := mustAsk(t, parentRef, spawnKid{name: "child"}).(*Reference)
		require.True(t, ok)
		kids := mustAsk(t, parentRef, listKids{}).([]*Reference)
		require.Len(t, kids, 1)
		assert.Equal(t, "/parent/child", child.Path())
		assert.True(t, child.Parent().Equals(parentRef))

		parentRef.Tell(Terminate)
		awaitTermination(t, parentRef)
		awaitTermination(t, child)
	})
	t.Run("With a terminated child removed from its parent", func(t *testing.T) {
		system := newTestSystem(t)
		parentRef := spawn(t, system, "parent", newParent(newCounter))

		first := mustAsk(t, parentRef, spawnKid{name: "first"}).(*Reference)
		second := mustAsk(t, parentRef, spawnKid{name: "second"}).(*Reference)
		assert.Equal(t, []*Reference{first, second}, mustAsk(t, parentRef, listKids{}))

		first.Tell(Terminate)
		awaitTermination(t, first)
		require.Eventually(t, func() bool {
			kids := mustAsk(t, parentRef, listKids{}).([]*Reference)
			return len(kids) == 1 && kids[0].Equals(second)
		}, askTimeout, 10*time.Millisecond)
	})
	t.Run("With await", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "recorder", newRecorder)

		for i := range 10 {
			ref.Tell(i)
		}
		assert.Equal(t, true, mustAsk(t, ref, Await))
		assert.Len(t, mustAsk(t, ref, get{}), 10)
	})
	t.Run("With linking", func(t *testing.T) {
		system := newTestSystem(t)
		listener := spawn(t, system, "listener", newParent(newCounter))
		watched := spawn(t, system, "watched", newCounter)

		// the listener links itself to the watched actor
		assert.Equal(t, true, mustAsk(t, listener, relay{to: watched, control: Link}))
		// the test itself is not linked
		assert.Equal(t, false, mustAsk(t, watched, IsLinked))

		watched.Tell(Terminate)
		awaitTermination(t, watched)

		require.Eventually(t, func() bool {
			events := mustAsk(t, listener, recorded{}).([]Event)
			return len(events) == 1 && events[0].Kind == TerminatedEvent
		}, askTimeout, 10*time.Millisecond)
	})
	t.Run("With spawn linked to the parent", func(t *testing.T) {
		system := newTestSystem(t)
		parentRef := spawn(t, system, "parent", newParent(newCounter, WithLink()))

		child := mustAsk(t, parentRef, spawnKid{name: "child"}).(*Reference)
		child.Tell(Terminate)

		require.Eventually(t, func() bool {
			events := mustAsk(t, parentRef, recorded{}).([]Event)
			return len(events) == 1 && events[0].Kind == TerminatedEvent
		}, askTimeout, 10*time.Millisecond)
	})
	t.Run("With a failing PreStart", func(t *testing.T) {
		system := newTestSystem(t, WithInitMaxRetries(2), WithInitTimeout(100*time.Millisecond))

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()

		ref, err := system.Spawn(ctx, "failing", func() Actor { return new(failingStarter) })
		require.Error(t, err)
		assert.Nil(t, ref)
		assert.ErrorIs(t, err, gerrors.ErrInitFailure)
	})
	t.Run("With PreStart run again on every reset", func(t *testing.T) {
		system := newTestSystem(t)

		starts := new(startCounter)
		parentRef := spawn(t, system, "parent",
			newParent(starts.producer, WithBehaviourDefinition(RestartingBehaviourDefinition(nil)), WithSupervise()))

		child := mustAsk(t, parentRef, spawnKid{name: "child"}).(*Reference)
		mustAsk(t, child, Await)
		assert.EqualValues(t, 1, starts.load())

		mustAsk(t, parentRef, relay{to: child, control: Reset})
		mustAsk(t, child, Await)
		assert.EqualValues(t, 2, starts.load())
	})
	t.Run("With the actor state guarded outside of its turn", func(t *testing.T) {
		system := newTestSystem(t)

		var captured *ActorContext
		ref := spawn(t, system, "leaky", AdHoc(func(ctx *ActorContext, _ any) (any, error) {
			captured = ctx
			return nil, nil
		}))
		mustAsk(t, ref, "capture")

		assert.PanicsWithError(t, gerrors.ErrOutsideActorTurn.Error()+": /leaky", func() {
			captured.Children()
		})
		assert.Panics(t, func() {
			_, _ = captured.Spawn("child", newCounter)
		})
	})
	t.Run("With a context of an earlier turn used during another turn", func(t *testing.T) {
		system := newTestSystem(t)

		var captured *ActorContext
		blocked := make(chan struct{})
		release := make(chan struct{})
		ref := spawn(t, system, "stale", AdHoc(func(ctx *ActorContext, message any) (any, error) {
			switch message {
			case "capture":
				captured = ctx
			case "block":
				close(blocked)
				<-release
			}
			return nil, nil
		}))
		mustAsk(t, ref, "capture")

		ref.Tell("block")
		<-blocked

		assert.PanicsWithError(t, gerrors.ErrOutsideActorTurn.Error()+": /stale", func() {
			captured.Children()
		})
		assert.Panics(t, func() {
			captured.Terminate()
		})

		close(release)
		assert.False(t, ref.IsTerminated())
	})
	t.Run("With spawn refused once the actor terminated", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "parent", AdHoc(func(ctx *ActorContext, _ any) (any, error) {
			ctx.Terminate()
			return ctx.Spawn("orphan", newCounter)
		}))

		_, err := askSync(t, ref, "spawn")
		require.Error(t, err)

		var terminated *gerrors.ActorTerminatedError
		require.True(t, errors.As(err, &terminated))
		assert.Equal(t, "/parent", terminated.Path())
		awaitTermination(t, ref)

		for _, actor := range system.Actors() {
			assert.NotEqual(t, "/parent/orphan", actor.Path())
		}
	})
	t.Run("With pass from the actor", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "passing", AdHoc(func(ctx *ActorContext, message any) (any, error) {
			if message == "known" {
				return "ok", nil
			}
			return ctx.Pass()
		}))

		assert.Equal(t, "ok", mustAsk(t, ref, "known"))
		_, err := askSync(t, ref, 42)
		assert.ErrorIs(t, err, gerrors.ErrUnknownMessage)
	})
	t.Run("With redirect keeping the future", func(t *testing.T) {
		system := newTestSystem(t)
		target := spawn(t, system, "counter", newCounter)
		proxy := spawn(t, system, "proxy", AdHoc(func(ctx *ActorContext, _ any) (any, error) {
			return ctx.Redirect(target)
		}))

		assert.Equal(t, 4, mustAsk(t, proxy, 4))
		assert.Equal(t, 4, mustAsk(t, target, get{}))
	})
	t.Run("With an actor providing its behaviour definition", func(t *testing.T) {
		system := newTestSystem(t)
		ref := spawn(t, system, "provider", func() Actor { return new(justLogCounter) })

		_, err := askSync(t, ref, fail{})
		assert.ErrorIs(t, err, errFailure)
		assert.False(t, ref.IsTerminated())
		assert.Equal(t, 0, mustAsk(t, ref, get{}))
	})
	t.Run("With an invalid spawn", func(t *testing.T) {
		system := newTestSystem(t)

		ctx := context.Background()
		_, err := system.Spawn(ctx, "", newCounter)
		assert.ErrorIs(t, err, gerrors.ErrInvalidName)

		_, err = system.Spawn(ctx, "a/b", newCounter)
		assert.ErrorIs(t, err, gerrors.ErrInvalidName)

		_, err = system.Spawn(ctx, "nil", nil)
		assert.ErrorIs(t, err, gerrors.ErrProducerRequired)

		_, err = system.Spawn(ctx, "bad", newCounter, WithBehaviourDefinition(BehaviourDefinition{Buffer()}))
		assert.ErrorIs(t, err, gerrors.ErrInvalidBehaviourDefinition)

		_, err = system.Spawn(ctx, "unsupervisable", newCounter, WithSupervise())
		assert.ErrorIs(t, err, gerrors.ErrInvalidBehaviourDefinition)
	})
	t.Run("With a custom executor", func(t *testing.T) {
		system := newTestSystem(t)
		executor := &countingExecutor{}
		ref := spawn(t, system, "counter", newCounter, WithSpawnExecutor(executor))

		ref.Tell(1)
		assert.Equal(t, 1, mustAsk(t, ref, get{}))
		assert.Positive(t, executor.count())
	})
	t.Run("With a refusing executor", func(t *testing.T) {
		system := newTestSystem(t)
		executor := &countingExecutor{}
		ref := spawn(t, system, "counter", newCounter, WithSpawnExecutor(executor))

		executor.refuse()
		_, err := askSync(t, ref, get{})
		assert.ErrorIs(t, err, gerrors.ErrExecutorStopped)

		executor.accept()
		ref.Tell(Terminate)
		awaitTermination(t, ref)
	})
}

type failingStarter struct{}

func (x *failingStarter) PreStart(*ActorContext) error {
	return errFailure
}

func (x *failingStarter) OnMessage(ctx *ActorContext, _ any) (any, error) {
	return ctx.Pass()
}

type startCounter struct {
	mu     sync.Mutex
	starts int
}

func (x *startCounter) load() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.starts
}

func (x *startCounter) producer() Actor {
	return &startingCounter{starts: x}
}

type startingCounter struct {
	counter
	starts *startCounter
}

func (x *startingCounter) PreStart(*ActorContext) error {
	x.starts.mu.Lock()
	x.starts.starts++
	x.starts.mu.Unlock()
	return nil
}

type justLogCounter struct {
	counter
}

func (x *justLogCounter) BehaviourDefinition() BehaviourDefinition {
	return concat(BaseBehaviours(), LinkingBehaviours(), UserMessageBehaviours(JustLog))
}

// countingExecutor runs every task on its own goroutine
type countingExecutor struct {
	mu        sync.Mutex
	submitted int
	refusing  bool
}

func (x *countingExecutor) Submit(task func()) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.refusing {
		return gerrors.ErrExecutorStopped
	}
	x.submitted++
	go task()
	return nil
}

func (x *countingExecutor) count() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.submitted
}

func (x *countingExecutor) refuse() {
	x.mu.Lock()
	x.refusing = true
	x.mu.Unlock()
	lib.Pause(10 * time.Millisecond)
}

func (x *countingExecutor) accept() {
	x.mu.Lock()
	x.refusing = false
	x.mu.Unlock()
}
