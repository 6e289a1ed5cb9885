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

package workerpool

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	gerrors "github.com/tochemey/troupe/errors"
	"github.com/tochemey/troupe/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWorkerPool(t *testing.T) {
	t.Run("With tasks executed", func(t *testing.T) {
		pool := New(WithSize(4), WithLogger(log.DiscardLogger))
		require.Equal(t, 4, pool.Size())
		pool.Start()

		var (
			wg    sync.WaitGroup
			count = atomic.NewInt64(0)
		)
		for range 100 {
			wg.Add(1)
			require.NoError(t, pool.Submit(func() {
				defer wg.Done()
				count.Inc()
			}))
		}

		wg.Wait()
		assert.EqualValues(t, 100, count.Load())
		pool.Stop()
	})
	t.Run("With a panicking task the worker survives", func(t *testing.T) {
		pool := New(WithSize(1))
		pool.Start()

		require.NoError(t, pool.Submit(func() { panic("boom") }))

		done := make(chan struct{})
		require.NoError(t, pool.Submit(func() { close(done) }))

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("task was not executed after a panic")
		}
		pool.Stop()
	})
	t.Run("With submit after stop", func(t *testing.T) {
		pool := New(WithSize(2))
		pool.Start()
		pool.Stop()
		// stopping twice is a no-op
		pool.Stop()

		err := pool.Submit(func() {})
		require.ErrorIs(t, err, gerrors.ErrExecutorStopped)
	})
	t.Run("With invalid size the default is kept", func(t *testing.T) {
		pool := New(WithSize(0))
		assert.Positive(t, pool.Size())
	})
}
