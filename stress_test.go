// Copyright 2026 The avkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package promise_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/avkit/promise"
)

// TestConcurrentWaiters checks the broadcast contract: a single settling
// call must release every blocked waiter, and all of them must observe the
// same result and value.
func TestConcurrentWaiters(t *testing.T) {
	p := promise.New[int]()

	const waiters = 16
	var ready sync.WaitGroup
	ready.Add(waiters)

	var g errgroup.Group
	for i := 0; i < waiters; i++ {
		g.Go(func() error {
			ready.Done()
			if got := p.Wait(); got != promise.ResultFulfilled {
				return fmt.Errorf("Wait() = %v, want: %v", got, promise.ResultFulfilled)
			}
			val, ok := p.Value()
			if !ok || val != 42 {
				return fmt.Errorf("Value() = (%v, %v), want: (42, true)", val, ok)
			}
			return nil
		})
	}

	// make it likely that the waiters are actually blocked in Wait,
	// not returning early from an already settled promise.
	ready.Wait()
	time.Sleep(time.Millisecond)
	p.Fulfill(42)

	require.NoError(t, g.Wait())
	p.Unref()
}

// stressItem is one independently created promise, together with the single
// settling call that will be issued against it.
type stressItem struct {
	p    *promise.Promise[int]
	want promise.Result
}

func (item stressItem) settle() {
	switch item.want {
	case promise.ResultFulfilled:
		item.p.Fulfill(1)
	case promise.ResultCancelled:
		item.p.Cancel()
	case promise.ResultInvalidated:
		item.p.Invalidate()
	default:
		panic("promise_test: unexpected stress result")
	}
}

// TestStress runs three pools of goroutines against each other: pushers
// creating promises with a randomly chosen settling call, settlers issuing
// those calls, and waiters blocking on the promises and checking that each
// one settles exactly as issued. The test passes when nothing deadlocks, no
// diagnostic fires, and every promise ends in the result that was issued
// against it.
func TestStress(t *testing.T) {
	const (
		workers = 3
		runFor  = 100 * time.Millisecond
	)

	h := captureDiags(t)

	settleCh := make(chan stressItem, 256)
	waitCh := make(chan stressItem, 256)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var pushed atomic.Int64
	var pushers errgroup.Group
	for i := 0; i < workers; i++ {
		pushers.Go(func() error {
			for ctx.Err() == nil {
				item := stressItem{
					p: promise.New[int](),
					// any result but pending
					want: promise.Result(rand.IntN(3) + 1),
				}
				settleCh <- item
				waitCh <- item
				pushed.Add(1)
			}
			return nil
		})
	}

	var workGroup errgroup.Group
	for i := 0; i < workers; i++ {
		workGroup.Go(func() error {
			for item := range settleCh {
				item.settle()
			}
			return nil
		})
		workGroup.Go(func() error {
			for item := range waitCh {
				if got := item.p.Wait(); got != item.want {
					return fmt.Errorf("Wait() = %v, want: %v", got, item.want)
				}
				item.p.Unref()
			}
			return nil
		})
	}

	time.Sleep(runFor)
	stop()

	// the settlers and waiters keep draining until the pushers are done,
	// so the pushers never block on a full queue during shutdown.
	require.NoError(t, pushers.Wait())
	close(settleCh)
	close(waitCh)
	require.NoError(t, workGroup.Wait())

	require.Zero(t, h.count())
	t.Logf("settled %d promises", pushed.Load())
}
