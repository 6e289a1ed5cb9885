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
	"fmt"
	"runtime"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/troupe/errors"
	"github.com/tochemey/troupe/future"
	"github.com/tochemey/troupe/internal/queue"
	"github.com/tochemey/troupe/log"
)

const (
	idle int32 = iota
	busy
)

// Executor runs the turns of the actors. Submit must not run the task
// synchronously and returns an error when the task is refused.
type Executor interface {
	Submit(task func()) error
}

// unit is one turn of an actor: either an envelope to push through the
// behaviour chain or a continuation scheduled by a behaviour
type unit struct {
	run      func()
	envelope *Envelope
}

// core drives the behaviour chain of one actor. Everything besides the
// scheduling fields is only touched from within the actor's own turn.
type core struct {
	name     string
	path     string
	parent   *Reference
	ref      *Reference
	system   *actorSystem
	executor Executor
	logger   log.Logger
	producer Producer

	head       Behaviour
	behaviours map[BehaviourKind]Behaviour
	actor      Actor
	children   mapset.Set[*Reference]

	// where rejected envelopes without a future go, set before the first turn
	deadLetters *Reference
	link        bool
	supervise   bool

	units      *queue.Mpsc[unit]
	processing *atomic.Int32
	inTurn     *atomic.Bool
	// sequence of the current turn, the contexts of other turns are stale
	turn *atomic.Uint64

	terminating *atomic.Bool
	terminated  chan struct{}
	initialized *future.Future

	initMaxRetries int
	initTimeout    time.Duration
}

// newCore allocates the first Actor instance, validates and builds the
// behaviour chain. The core does not run until it is booted.
func newCore(system *actorSystem, parent *core, name string, producer Producer, config *spawnConfig) (*core, error) {
	actor := producer()
	if actor == nil {
		return nil, gerrors.ErrProducerRequired
	}

	definition := config.definition
	if definition == nil {
		if provider, ok := actor.(BehaviourProvider); ok {
			definition = provider.BehaviourDefinition()
		} else {
			definition = BasicBehaviourDefinition()
		}
	}

	if err := config.validate(definition, parent != nil); err != nil {
		return nil, err
	}

	c := &core{
		name:           name,
		path:           childPath(parent, name),
		system:         system,
		executor:       config.executor,
		producer:       producer,
		actor:          actor,
		children:       mapset.NewThreadUnsafeSet[*Reference](),
		deadLetters:    config.deadLetters,
		link:           config.link,
		supervise:      config.supervise,
		units:          queue.NewMpsc[unit](),
		processing:     atomic.NewInt32(idle),
		inTurn:         atomic.NewBool(false),
		turn:           atomic.NewUint64(0),
		terminating:    atomic.NewBool(false),
		terminated:     make(chan struct{}),
		initialized:    future.New(),
		initMaxRetries: system.initMaxRetries,
		initTimeout:    system.initTimeout,
	}

	if parent != nil {
		c.parent = parent.ref
		if c.executor == nil {
			c.executor = parent.executor
		}
		if c.deadLetters == nil {
			c.deadLetters = parent.deadLetters
		}
	}

	if c.executor == nil {
		c.executor = system.executor
	}
	if c.deadLetters == nil {
		c.deadLetters = system.deadLetters
	}

	c.ref = newReference(c)
	c.logger = system.logger.With("actor", c.path)
	c.head, c.behaviours = definition.build(c)
	return c, nil
}

func childPath(parent *core, name string) string {
	switch {
	case parent == nil:
		return "/"
	case parent.parent == nil:
		return "/" + name
	default:
		return parent.path + "/" + name
	}
}

// boot registers the actor and schedules its initialization as its first turn
func (c *core) boot() {
	c.system.register(c.ref)
	c.system.recordSpawn(c.path)
	c.scheduleTurn(c.initialize)
}

// onEnvelope schedules one turn pushing the envelope through the chain
func (c *core) onEnvelope(envelope *Envelope) {
	c.units.Push(unit{envelope: envelope})
	c.process()
}

// scheduleTurn schedules fn as a turn of its own
func (c *core) scheduleTurn(fn func()) {
	c.units.Push(unit{run: fn})
	c.process()
}

// process makes sure exactly one executor task is in flight while there is work
func (c *core) process() {
	if c.processing.CompareAndSwap(idle, busy) {
		if err := c.executor.Submit(c.runUnit); err != nil {
			c.abandon(err)
		}
	}
}

// runUnit runs a single turn then hands the executor back to the other actors
func (c *core) runUnit() {
	if u, ok := c.pop(); ok {
		c.execute(u)
	}

	c.processing.Store(idle)
	if !c.units.IsEmpty() {
		c.process()
	}
}

func (c *core) pop() (unit, bool) {
	// a producer may have counted its unit without having linked it yet
	for !c.units.IsEmpty() {
		if u, ok := c.units.Pop(); ok {
			return u, true
		}
		runtime.Gosched()
	}
	return unit{}, false
}

func (c *core) execute(u unit) {
	c.turn.Inc()
	c.inTurn.Store(true)
	defer func() {
		c.inTurn.Store(false)
		if r := recover(); r != nil {
			err := gerrors.NewPanicError(fmt.Errorf("%v", r))
			c.logger.Errorf("turn panicked: %v", err)
			if u.envelope != nil {
				c.rejectEnvelope(u.envelope, err)
			}
		}
	}()

	if u.run != nil {
		u.run()
		return
	}

	if c.logger.Enabled(log.DebugLevel) {
		c.logger.Debugf("received %s", u.envelope)
	}

	result, err := c.head.OnEnvelope(u.envelope)
	c.settle(u.envelope, result, err)
}

// abandon drops the queued turns after the executor refused to run them.
// It is only called while holding the busy flag.
func (c *core) abandon(reason error) {
	for {
		for !c.units.IsEmpty() {
			u, ok := c.units.Pop()
			if !ok {
				runtime.Gosched()
				continue
			}
			if u.envelope != nil && !u.envelope.Reject(reason) {
				c.logger.Warnf("dropped %s: %v", u.envelope, reason)
			}
		}

		c.processing.Store(idle)
		if c.units.IsEmpty() || !c.processing.CompareAndSwap(idle, busy) {
			return
		}
	}
}

// settle completes the future with what the chain returned for the envelope
func (c *core) settle(envelope *Envelope, result any, err error) {
	if err != nil {
		if !envelope.Reject(err) {
			c.logger.Errorf("failed to handle %s: %v", envelope, err)
		}
		return
	}

	if result != MessageProcessed && envelope.Future() != nil {
		envelope.Future().Success(result)
	}
}

// broadcast drives the event through the chain. Public events are also
// published on the lifecycle topic.
func (c *core) broadcast(public bool, event Event) {
	if c.logger.Enabled(log.DebugLevel) {
		c.logger.Debugf("broadcasting %s (public=%t)", event, public)
	}

	c.head.OnEvent(public, event)
	if public {
		c.system.publishLifecycle(c.ref, event)
	}
}

// rejectEnvelope fails the envelope future or, when it has none, sends it
// to the dead letters route. A rejection never comes back to this actor.
func (c *core) rejectEnvelope(envelope *Envelope, reason error) {
	if envelope.Future() != nil {
		envelope.Reject(reason)
		return
	}

	switch envelope.Message().(type) {
	case removeChild:
		return
	case *DeadLetter:
		c.logger.Debugf("dropped dead letter %s: %v", envelope, reason)
		return
	}

	route := c.deadLetters
	if route == nil || route.Equals(c.ref) {
		c.logger.Debugf("dropped %s: %v", envelope, reason)
		return
	}

	route.send(&DeadLetter{
		Envelope:  envelope,
		Reason:    reason,
		Timestamp: time.Now(),
	}, nil, c.ref)
}

// guard panics when called outside of the actor's own turn
func (c *core) guard() {
	if !c.inTurn.Load() {
		panic(fmt.Errorf("%w: %s", gerrors.ErrOutsideActorTurn, c.path))
	}
}

// childrenRefs returns the children ordered by path
func (c *core) childrenRefs() []*Reference {
	c.guard()
	children := c.children.ToSlice()
	sortByPath(children)
	return children
}

func sortByPath(refs []*Reference) {
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Path() < refs[j].Path()
	})
}

func (c *core) addChild(child *Reference) {
	c.guard()
	c.children.Add(child)
}

func (c *core) removeChild(child *Reference) {
	c.guard()
	c.children.Remove(child)
}

func (c *core) behaviour(kind BehaviourKind) Behaviour {
	return c.behaviours[kind]
}

func (c *core) termination() *terminationBehaviour {
	b, _ := c.behaviour(TerminationKind).(*terminationBehaviour)
	return b
}

func (c *core) linking() *linkingBehaviour {
	b, _ := c.behaviour(LinkingKind).(*linkingBehaviour)
	return b
}

func (c *core) supervised() *supervisedBehaviour {
	b, _ := c.behaviour(SupervisedKind).(*supervisedBehaviour)
	return b
}

func (c *core) pausing() *pausingBehaviour {
	b, _ := c.behaviour(PausingKind).(*pausingBehaviour)
	return b
}

func (c *core) isTerminated() bool {
	return c.terminating.Load()
}

// initialize is the first turn of the actor
func (c *core) initialize() {
	if c.link && c.parent != nil {
		c.linking().link(c.parent)
	}
	if c.supervise && c.parent != nil {
		c.supervised().supervise(c.parent)
	}

	if err := c.preStart(); err != nil {
		c.logger.Errorf("failed to initialize: %v", err)
		c.initialized.Failure(gerrors.NewSpawnError(err))
		c.termination().terminate()
		return
	}

	c.logger.Debug("initialized")
	c.initialized.Success(c.ref)
}

// rebuild replaces the Actor with a fresh instance.
// The actor is terminated when the new instance cannot be initialized.
func (c *core) rebuild() error {
	c.actor = c.producer()
	if c.actor == nil {
		c.logger.Error(gerrors.ErrProducerRequired)
		c.termination().terminate()
		return gerrors.ErrProducerRequired
	}

	if err := c.preStart(); err != nil {
		c.logger.Errorf("failed to rebuild: %v", err)
		c.termination().terminate()
		return err
	}
	return nil
}

func (c *core) preStart() error {
	starter, ok := c.actor.(PreStarter)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.initTimeout)
	defer cancel()

	actorContext := newActorContext(c, nil)
	retrier := retry.NewRetrier(c.initMaxRetries, time.Millisecond, c.initTimeout)
	if err := retrier.RunContext(ctx, func(context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = toPanicError(r)
			}
		}()
		return starter.PreStart(actorContext)
	}); err != nil {
		return gerrors.NewErrInitFailure(err)
	}
	return nil
}

func (c *core) receive(envelope *Envelope) (any, error) {
	return c.actor.OnMessage(newActorContext(c, envelope), envelope.Message())
}

// notify hands the event to the Actor. A panicking handler is logged and
// does not stop the event from reaching the rest of the chain.
func (c *core) notify(event Event) {
	handler, ok := c.actor.(EventHandler)
	if !ok {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorf("failed to handle %s: %v", event, toPanicError(r))
		}
	}()
	handler.OnEvent(newActorContext(c, nil), event)
}

// terminationDone is called once, from the turn terminating the actor
func (c *core) terminationDone() {
	close(c.terminated)
	c.system.unregister(c.ref)
	c.initialized.Failure(gerrors.NewSpawnError(gerrors.NewActorTerminatedError(c.path)))
	c.logger.Debug("terminated")
}

func (c *core) recordProcessed(duration time.Duration) {
	if c.system.metrics != nil {
		c.system.metrics.RecordProcessed(context.Background(), c.path, duration)
	}
}

func (c *core) recordFailure() {
	if c.system.metrics != nil {
		c.system.metrics.RecordFailure(context.Background(), c.path)
	}
}
