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
	"sync"
	"time"

	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/troupe/errors"
	"github.com/tochemey/troupe/log"
)

// scheduler delivers messages to actors in the future
type scheduler struct {
	// helps lock concurrent access
	mu sync.Mutex
	// underlying Scheduler
	quartzScheduler quartz.Scheduler
	// states whether the quartzScheduler has started or not
	started *atomic.Bool
	logger  log.Logger
	// define the shutdown timeout
	stopTimeout time.Duration
}

// newScheduler creates an instance of scheduler
func newScheduler(logger log.Logger, stopTimeout time.Duration) *scheduler {
	// create an instance of quartz scheduler with logger off
	quartzScheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))

	return &scheduler{
		started:         atomic.NewBool(false),
		quartzScheduler: quartzScheduler,
		logger:          logger,
		stopTimeout:     stopTimeout,
	}
}

// Start starts the scheduler
func (x *scheduler) Start(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.logger.Info("starting messages scheduler...")
	x.quartzScheduler.Start(ctx)
	x.started.Store(x.quartzScheduler.IsStarted())
	x.logger.Info("messages scheduler started.:)")
}

// Stop stops the scheduler
func (x *scheduler) Stop(ctx context.Context) {
	if !x.started.Load() {
		return
	}

	x.logger.Info("stopping messages scheduler...")
	x.mu.Lock()
	defer x.mu.Unlock()
	_ = x.quartzScheduler.Clear()
	x.quartzScheduler.Stop()
	x.started.Store(x.quartzScheduler.IsStarted())

	ctx, cancel := context.WithTimeout(ctx, x.stopTimeout)
	defer cancel()
	x.quartzScheduler.Wait(ctx)

	x.logger.Info("messages scheduler stopped...:)")
}

// ScheduleOnce sends the message to the actor once, after the given delay
func (x *scheduler) ScheduleOnce(message any, to *Reference, delay time.Duration, opts ...ScheduleOption) error {
	return x.schedule(message, to, quartz.NewRunOnceTrigger(delay), opts...)
}

// Schedule sends the message to the actor at every interval
func (x *scheduler) Schedule(message any, to *Reference, interval time.Duration, opts ...ScheduleOption) error {
	return x.schedule(message, to, quartz.NewSimpleTrigger(interval), opts...)
}

// ScheduleWithCron sends the message to the actor following the cron expression
func (x *scheduler) ScheduleWithCron(message any, to *Reference, cronExpression string, opts ...ScheduleOption) error {
	trigger, err := quartz.NewCronTriggerWithLoc(cronExpression, time.Now().Location())
	if err != nil {
		x.logger.Error(fmt.Errorf("failed to schedule message: %w", err))
		return err
	}
	return x.schedule(message, to, trigger, opts...)
}

// Cancel removes the scheduled message with the given reference
func (x *scheduler) Cancel(reference string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrSchedulerNotStarted
	}
	return x.quartzScheduler.DeleteJob(quartz.NewJobKey(reference))
}

func (x *scheduler) schedule(message any, to *Reference, trigger quartz.Trigger, opts ...ScheduleOption) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrSchedulerNotStarted
	}

	config := newScheduleConfig(opts...)
	sender := config.sender

	delivery := job.NewFunctionJob[bool](
		func(context.Context) (bool, error) {
			if to.IsTerminated() {
				return false, gerrors.NewActorTerminatedError(to.Path())
			}
			to.send(message, nil, sender)
			return true, nil
		},
	)

	detail := quartz.NewJobDetail(delivery, quartz.NewJobKey(config.reference))
	return x.quartzScheduler.ScheduleJob(detail, trigger)
}
