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
	"fmt"
	"os"
	"runtime"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/troupe/errors"
	"github.com/tochemey/troupe/eventstream"
	imetric "github.com/tochemey/troupe/internal/metric"
	"github.com/tochemey/troupe/internal/validation"
	"github.com/tochemey/troupe/internal/workerpool"
	"github.com/tochemey/troupe/log"
)

const (
	// DeadLetterTopic is the event stream topic of the *DeadLetter values
	DeadLetterTopic = "topic.deadletters"
	// LifecycleTopic is the event stream topic of the *LifecycleEvent values
	LifecycleTopic = "topic.lifecycle"
)

// ActorSystem groups actors under a root actor sharing one executor.
type ActorSystem interface {
	// Name returns the actor system name
	Name() string
	// Start starts the executor, the scheduler, the root and the dead letters actors
	Start(ctx context.Context) error
	// Stop terminates every actor and waits for them up to the shutdown timeout,
	// then stops the scheduler and the executor it owns.
	Stop(ctx context.Context) error
	// Running returns true when the actor system is running
	Running() bool
	// Spawn creates a top level actor and waits for its initialization.
	// It blocks on a turn of the root actor then on the first turn of the new
	// actor, so it must not be called from within an actor: it would hold a
	// worker of the shared executor while waiting for other actors to run.
	// Actors spawn their children with ActorContext.Spawn instead.
	Spawn(ctx context.Context, name string, producer Producer, opts ...SpawnOption) (*Reference, error)
	// Root returns the root actor
	Root() *Reference
	// DeadLetters returns the actor receiving the rejected envelopes by default
	DeadLetters() *Reference
	// DeadLettersCount returns the number of dead letters addressed to the
	// given path, or to any actor when path is empty
	DeadLettersCount(ctx context.Context, path string) (int64, error)
	// Actors returns the live actors, the root and dead letters actors included
	Actors() []*Reference
	// Subscribe creates an event subscriber of the DeadLetterTopic and LifecycleTopic
	Subscribe() (*eventstream.Subscriber, error)
	// Unsubscribe unsubscribes a subscriber
	Unsubscribe(subscriber *eventstream.Subscriber) error
	// ScheduleOnce sends the message to the actor once, after the given delay
	ScheduleOnce(message any, to *Reference, delay time.Duration, opts ...ScheduleOption) error
	// Schedule sends the message to the actor at every interval
	Schedule(message any, to *Reference, interval time.Duration, opts ...ScheduleOption) error
	// ScheduleWithCron sends the message to the actor following the cron expression
	ScheduleWithCron(message any, to *Reference, cronExpression string, opts ...ScheduleOption) error
	// CancelSchedule cancels the scheduled message with the given reference
	CancelSchedule(reference string) error
	// Logger returns the logger of the actor system
	Logger() log.Logger
}

// actorSystem implements ActorSystem
type actorSystem struct {
	name   string
	logger log.Logger

	executor Executor
	// pool is the executor created, and stopped, by the actor system
	pool    *workerpool.WorkerPool
	workers int

	initMaxRetries  int
	initTimeout     time.Duration
	shutdownTimeout time.Duration

	meterProvider metric.MeterProvider
	metrics       *imetric.Metrics

	eventsStream *eventstream.Stream
	scheduler    *scheduler
	registry     mapset.Set[*Reference]

	root        *Reference
	deadLetters *Reference

	started *atomic.Bool
}

// enforce compilation error
var _ ActorSystem = (*actorSystem)(nil)

// NewActorSystem creates an instance of ActorSystem
func NewActorSystem(name string, opts ...Option) (ActorSystem, error) {
	if name == "" {
		return nil, gerrors.ErrNameRequired
	}

	system := &actorSystem{
		name:            name,
		logger:          log.NewZap(log.ErrorLevel, os.Stderr),
		workers:         runtime.NumCPU(),
		initMaxRetries:  DefaultInitMaxRetries,
		initTimeout:     DefaultInitTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		eventsStream:    eventstream.New(),
		registry:        mapset.NewSet[*Reference](),
		started:         atomic.NewBool(false),
	}

	for _, opt := range opts {
		opt.Apply(system)
	}

	if err := validation.New().
		AddAssertion(system.initTimeout > 0, gerrors.ErrInvalidTimeout).
		AddAssertion(system.shutdownTimeout > 0, gerrors.ErrInvalidTimeout).
		AddAssertion(system.initMaxRetries > 0, fmt.Errorf("init max retries must be greater than zero")).
		AddAssertion(system.executor != nil || system.workers > 0, gerrors.ErrInvalidPoolSize).
		Validate(); err != nil {
		return nil, err
	}

	metrics, err := imetric.New(system.meterProvider)
	if err != nil {
		return nil, err
	}

	system.metrics = metrics
	system.scheduler = newScheduler(system.logger, system.shutdownTimeout)
	return system, nil
}

// Name returns the actor system name
func (x *actorSystem) Name() string {
	return x.name
}

// Logger returns the logger of the actor system
func (x *actorSystem) Logger() log.Logger {
	return x.logger
}

// Running returns true when the actor system is running
func (x *actorSystem) Running() bool {
	return x.started.Load()
}

// Start starts the actor system
func (x *actorSystem) Start(ctx context.Context) error {
	if !x.started.CompareAndSwap(false, true) {
		return gerrors.ErrActorSystemAlreadyStarted
	}

	x.logger.Infof("%s actor system starting...", x.name)

	if x.executor == nil {
		x.pool = workerpool.New(workerpool.WithSize(x.workers), workerpool.WithLogger(x.logger))
		x.pool.Start()
		x.executor = x.pool
	}

	root, err := newCore(x, nil, rootName, func() Actor { return new(rootActor) }, newSpawnConfig())
	if err != nil {
		return x.abortStart(err)
	}

	deadLetters, err := newCore(x, root, deadLettersName, newDeadLetterActor, newSpawnConfig())
	if err != nil {
		return x.abortStart(err)
	}

	// both actors route to dead letters, which drops what it rejects
	root.deadLetters = deadLetters.ref
	deadLetters.deadLetters = deadLetters.ref
	root.children.Add(deadLetters.ref)

	x.root = root.ref
	x.deadLetters = deadLetters.ref

	root.boot()
	deadLetters.boot()

	x.scheduler.Start(ctx)

	for _, ref := range []*Reference{x.root, x.deadLetters} {
		if _, err := ref.core.initialized.Await(ctx); err != nil {
			_ = x.Stop(context.WithoutCancel(ctx))
			return err
		}
	}

	x.logger.Infof("%s actor system successfully started..:)", x.name)
	return nil
}

// Stop stops the actor system
func (x *actorSystem) Stop(ctx context.Context) error {
	if !x.started.Load() {
		return gerrors.ErrActorSystemNotStarted
	}

	x.logger.Infof("%s is shutting down..:)", x.name)

	var err error
	if x.root != nil {
		x.root.Tell(Terminate)
		err = x.awaitTermination(ctx)
	}

	x.scheduler.Stop(ctx)
	x.eventsStream.Close()
	if x.pool != nil {
		x.pool.Stop()
		x.pool = nil
		x.executor = nil
	}

	x.started.Store(false)
	x.logger.Infof("%s shuts down successfully", x.name)
	return multierr.Append(err, x.logger.Flush())
}

// awaitTermination waits for every live actor to terminate
func (x *actorSystem) awaitTermination(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, x.shutdownTimeout)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	for _, ref := range x.registry.ToSlice() {
		eg.Go(func() error {
			select {
			case <-ref.Terminated():
				return nil
			case <-ctx.Done():
				return fmt.Errorf("%s: %w", ref.Path(), gerrors.ErrShutdownTimeout)
			}
		})
	}
	return eg.Wait()
}

// Spawn creates a top level actor
func (x *actorSystem) Spawn(ctx context.Context, name string, producer Producer, opts ...SpawnOption) (*Reference, error) {
	if !x.started.Load() {
		return nil, gerrors.ErrActorSystemNotStarted
	}

	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewNameValidator(name)).
		AddAssertion(producer != nil, gerrors.ErrProducerRequired).
		Validate(); err != nil {
		return nil, err
	}

	result, err := x.root.Ask(&spawnRequest{name: name, producer: producer, opts: opts}).Await(ctx)
	if err != nil {
		return nil, err
	}

	ref, ok := result.(*Reference)
	if !ok {
		return nil, gerrors.NewSpawnError(fmt.Errorf("unexpected spawn result %T", result))
	}

	if _, err := ref.core.initialized.Await(ctx); err != nil {
		return nil, err
	}
	return ref, nil
}

// Root returns the root actor
func (x *actorSystem) Root() *Reference {
	return x.root
}

// DeadLetters returns the dead letters actor
func (x *actorSystem) DeadLetters() *Reference {
	return x.deadLetters
}

// DeadLettersCount returns the number of dead letters
func (x *actorSystem) DeadLettersCount(ctx context.Context, path string) (int64, error) {
	if !x.started.Load() {
		return 0, gerrors.ErrActorSystemNotStarted
	}

	result, err := x.deadLetters.AskSync(ctx, &deadLettersCount{address: path})
	if err != nil {
		return 0, err
	}
	return result.(int64), nil
}

// Actors returns the live actors ordered by path
func (x *actorSystem) Actors() []*Reference {
	actors := x.registry.ToSlice()
	sortByPath(actors)
	return actors
}

// Subscribe creates an event subscriber
func (x *actorSystem) Subscribe() (*eventstream.Subscriber, error) {
	if !x.started.Load() {
		return nil, gerrors.ErrActorSystemNotStarted
	}

	subscriber := x.eventsStream.AddSubscriber()
	x.eventsStream.Subscribe(subscriber, DeadLetterTopic)
	x.eventsStream.Subscribe(subscriber, LifecycleTopic)
	return subscriber, nil
}

// Unsubscribe unsubscribes a subscriber
func (x *actorSystem) Unsubscribe(subscriber *eventstream.Subscriber) error {
	if !x.started.Load() {
		return gerrors.ErrActorSystemNotStarted
	}
	if subscriber == nil {
		return errors.New("subscriber is required")
	}

	x.eventsStream.RemoveSubscriber(subscriber)
	return nil
}

// ScheduleOnce sends the message to the actor once, after the given delay
func (x *actorSystem) ScheduleOnce(message any, to *Reference, delay time.Duration, opts ...ScheduleOption) error {
	return x.scheduler.ScheduleOnce(message, to, delay, opts...)
}

// Schedule sends the message to the actor at every interval
func (x *actorSystem) Schedule(message any, to *Reference, interval time.Duration, opts ...ScheduleOption) error {
	return x.scheduler.Schedule(message, to, interval, opts...)
}

// ScheduleWithCron sends the message to the actor following the cron expression
func (x *actorSystem) ScheduleWithCron(message any, to *Reference, cronExpression string, opts ...ScheduleOption) error {
	return x.scheduler.ScheduleWithCron(message, to, cronExpression, opts...)
}

// CancelSchedule cancels the scheduled message with the given reference
func (x *actorSystem) CancelSchedule(reference string) error {
	return x.scheduler.Cancel(reference)
}

func (x *actorSystem) abortStart(err error) error {
	if x.pool != nil {
		x.pool.Stop()
		x.pool = nil
		x.executor = nil
	}
	x.started.Store(false)
	return err
}

func (x *actorSystem) register(ref *Reference) {
	x.registry.Add(ref)
}

func (x *actorSystem) unregister(ref *Reference) {
	x.registry.Remove(ref)
}

func (x *actorSystem) recordSpawn(path string) {
	if x.metrics != nil {
		x.metrics.RecordSpawn(context.Background(), path)
	}
}

// publishLifecycle publishes a public event of the given actor
func (x *actorSystem) publishLifecycle(ref *Reference, event Event) {
	x.eventsStream.Publish(LifecycleTopic, &LifecycleEvent{
		Actor:     ref,
		Event:     event,
		Timestamp: time.Now(),
	})

	if x.metrics != nil {
		x.metrics.RecordEvent(context.Background(), ref.Path(), event.Kind.String())
	}
}
