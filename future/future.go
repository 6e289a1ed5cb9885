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

package future

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// Future is a single-assignment result cell. It is completed exactly once,
// either with a value through Success or with an error through Failure,
// and can be awaited by any number of readers.
//
// Example usage:
//
//	f := future.New()
//	go func() { f.Success(42) }()
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//
//	value, err := f.Await(ctx)
type Future struct {
	once      sync.Once
	done      chan struct{}
	completed *atomic.Bool
	value     any
	err       error
}

// New creates an incomplete Future
func New() *Future {
	return &Future{
		done:      make(chan struct{}),
		completed: atomic.NewBool(false),
	}
}

// Success completes the Future with the given value.
// It returns false when the Future was already completed.
func (f *Future) Success(value any) bool {
	return f.complete(value, nil)
}

// Failure completes the Future with the given error.
// It returns false when the Future was already completed.
func (f *Future) Failure(err error) bool {
	return f.complete(nil, err)
}

// Await blocks until the Future is completed or the context is done.
// A context error is returned without completing the Future.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed once the Future is completed
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsCompleted reports whether the Future holds a value or an error
func (f *Future) IsCompleted() bool {
	return f.completed.Load()
}

// Result returns the outcome of the Future or nil when it is not completed yet.
func (f *Future) Result() *Result {
	if !f.IsCompleted() {
		return nil
	}
	return &Result{success: f.value, failure: f.err}
}

func (f *Future) complete(value any, err error) bool {
	completed := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		f.completed.Store(true)
		close(f.done)
		completed = true
	})
	return completed
}
