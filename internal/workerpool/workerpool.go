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

// Package workerpool provides the fixed-size goroutine pool shared by actors
// to run their units of work.
package workerpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/troupe/errors"
	"github.com/tochemey/troupe/log"
)

// WorkerPool runs submitted tasks on a fixed number of goroutines.
// Tasks are taken in submission order; a task must not block on another task
// of the same pool.
type WorkerPool struct {
	size    int
	logger  log.Logger
	tasks   *queue.Queue
	started *atomic.Bool
	stopped *atomic.Bool
	wg      sync.WaitGroup
}

// New creates a WorkerPool. The pool defaults to one worker per CPU.
func New(opts ...Option) *WorkerPool {
	pool := &WorkerPool{
		size:    runtime.NumCPU(),
		logger:  log.DiscardLogger,
		started: atomic.NewBool(false),
		stopped: atomic.NewBool(false),
	}

	for _, opt := range opts {
		opt.Apply(pool)
	}

	pool.tasks = queue.New(int64(pool.size))
	return pool
}

// Start spawns the worker goroutines. Calling Start more than once is a no-op.
func (p *WorkerPool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}

	for range p.size {
		p.wg.Add(1)
		go p.work()
	}
}

// Submit queues the task for execution.
// It returns ErrExecutorStopped once the pool has been stopped.
func (p *WorkerPool) Submit(task func()) error {
	if p.stopped.Load() {
		return gerrors.ErrExecutorStopped
	}

	if err := p.tasks.Put(task); err != nil {
		if errors.Is(err, queue.ErrDisposed) {
			return gerrors.ErrExecutorStopped
		}
		return err
	}
	return nil
}

// Stop disposes the queue, drops the pending tasks and waits for running tasks to finish.
// Stop must not be called from a task of the same pool.
func (p *WorkerPool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}

	if dropped := p.tasks.Dispose(); len(dropped) > 0 {
		p.logger.Warnf("worker pool stopped with %d pending task(s)", len(dropped))
	}
	p.wg.Wait()
}

// Size returns the number of workers
func (p *WorkerPool) Size() int {
	return p.size
}

// Pending returns the number of tasks waiting for a worker
func (p *WorkerPool) Pending() int64 {
	return p.tasks.Len()
}

func (p *WorkerPool) work() {
	defer p.wg.Done()
	for {
		items, err := p.tasks.Get(1)
		if err != nil {
			// the queue has been disposed
			return
		}

		for _, item := range items {
			p.run(item.(func()))
		}
	}
}

func (p *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(fmt.Errorf("worker pool task panicked: %v", r))
		}
	}()
	task()
}
