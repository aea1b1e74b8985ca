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

package promise

import (
	"sync"
	"sync/atomic"
)

// Promise is a single-slot container for a value of type T that becomes
// available later. See the package comment for the full contract.
//
// The zero value is not usable; promises must be created with New.
type Promise[T any] struct {
	// mu guards the settling transition: the result, the value slot, the
	// change callback triple, and the wakeup of waiters. It's intentionally
	// not held while running an outgoing callback-context destructor, so a
	// destructor may call back into the same promise.
	mu   sync.Mutex
	cond sync.Cond

	// result mirrors, as an atomic word, the state guarded by mu. It's
	// written only with mu held. Keeping it readable without the lock lets
	// the change callback (which runs under mu) peek at it through Result.
	result atomic.Int32

	// the fulfilled value.
	// don't read it unless the result is known to be ResultFulfilled.
	val T

	// the change callback triple. guarded by mu.
	changeFn     ChangeFunc[T]
	changeData   any
	changeNotify func(data any)

	// the number of live handles. the last Unref finalizes the promise.
	refs atomic.Int32
}

// New returns a new, pending Promise, holding one reference for the caller.
func New[T any]() *Promise[T] {
	p := &Promise[T]{}
	p.cond.L = &p.mu
	p.refs.Store(1)
	return p
}

// Fulfill settles p with val, waking up any waiters with ResultFulfilled.
//
// Calling Fulfill on a nil promise means the producer was asked for no reply;
// val is dropped and nothing else happens. Calling it on a cancelled promise
// means the cancellation won the race; val is dropped, the result is
// unchanged, and the change callback doesn't fire again. Calling it on an
// already fulfilled or invalidated promise is a contract violation: it's
// diagnosed and ignored.
func (p *Promise[T]) Fulfill(val T) {
	// the caller requested that no reply is necessary
	if p == nil {
		return
	}

	p.mu.Lock()
	r := p.loadResult()
	if r != ResultPending && r != ResultCancelled {
		p.mu.Unlock()
		warn("promise: Fulfill on a settled promise", "result", r)
		return
	}

	// only fulfill iff we are currently pending.
	// on the cancelled path the value is simply dropped.
	if r == ResultPending {
		p.val = val
		p.storeResult(ResultFulfilled)
		if p.changeFn != nil {
			p.changeFn(p, p.changeData)
		}
	}

	p.cond.Broadcast()
	p.mu.Unlock()
}

// Cancel settles p, waking up any waiters with ResultCancelled.
//
// Calling Cancel on a fulfilled promise means the fulfillment won the race;
// it's silently ignored. Calling it on an already cancelled or invalidated
// promise is a contract violation: it's diagnosed and ignored.
func (p *Promise[T]) Cancel() {
	if p == nil {
		warn("promise: Cancel on a nil promise")
		return
	}

	p.mu.Lock()
	r := p.loadResult()
	if r != ResultPending && r != ResultFulfilled {
		p.mu.Unlock()
		warn("promise: Cancel on a settled promise", "result", r)
		return
	}

	// only cancel iff we are currently pending
	if r == ResultPending {
		p.storeResult(ResultCancelled)
		p.cond.Broadcast()
		if p.changeFn != nil {
			p.changeFn(p, p.changeData)
		}
	}
	p.mu.Unlock()
}

// Invalidate settles p, waking up any waiters with ResultInvalidated.
//
// It models the carrier of the promise being destroyed without anyone
// settling it, so unlike Fulfill and Cancel it tolerates being called in any
// state, however redundantly, without a diagnostic: if p is already settled,
// it's silently a no-op.
func (p *Promise[T]) Invalidate() {
	if p == nil {
		warn("promise: Invalidate on a nil promise")
		return
	}

	p.mu.Lock()
	if p.loadResult() == ResultPending {
		p.storeResult(ResultInvalidated)
		p.cond.Broadcast()
		if p.changeFn != nil {
			p.changeFn(p, p.changeData)
		}
	}
	p.mu.Unlock()
}

// Wait blocks the calling goroutine until p is settled, then returns its
// Result. If p is already settled, it returns immediately. Any number of
// goroutines may wait concurrently; a single settling call releases them all.
//
// Waiting on a nil promise returns ResultInvalidated as a safe default.
func (p *Promise[T]) Wait() Result {
	if p == nil {
		warn("promise: Wait on a nil promise")
		return ResultInvalidated
	}

	p.mu.Lock()
	// re-check on every wakeup, to guard against spurious wakeups
	for p.loadResult() == ResultPending {
		p.cond.Wait()
	}
	r := p.loadResult()
	p.mu.Unlock()

	return r
}

// WaitChan returns a newly created channel, which the Result of p will be
// sent on, for only one time, after waiting for p to be settled.
//
// If it's called on a settled promise, the Result is sent without waiting.
// The channel is buffered, so the Result is delivered even if the caller
// stops listening.
func (p *Promise[T]) WaitChan() <-chan Result {
	c := make(chan Result, 1)

	go func(c chan<- Result) {
		c <- p.Wait()
	}(c)

	return c
}

// Result returns the current Result of p, without blocking.
//
// It doesn't take the promise's internal lock, so it's safe to call from a
// change callback.
func (p *Promise[T]) Result() Result {
	if p == nil {
		warn("promise: Result on a nil promise")
		return ResultInvalidated
	}
	return Result(p.result.Load())
}

// Value returns the value p was fulfilled with.
//
// It's valid to call only once p is fulfilled; calling it in any other state
// is a contract violation, diagnosed and answered with the zero value and
// ok = false.
func (p *Promise[T]) Value() (val T, ok bool) {
	if p == nil {
		warn("promise: Value on a nil promise")
		return val, false
	}

	p.mu.Lock()
	if r := p.loadResult(); r != ResultFulfilled {
		p.mu.Unlock()
		warn("promise: Value on an unfulfilled promise", "result", r)
		return val, false
	}
	val = p.val
	p.mu.Unlock()

	return val, true
}

// Ref acquires a new handle on p and returns p, to allow chaining.
// Every Ref must be paired with an Unref.
func (p *Promise[T]) Ref() *Promise[T] {
	if p == nil {
		warn("promise: Ref on a nil promise")
		return nil
	}
	p.refs.Add(1)
	return p
}

// Unref releases the caller's handle on p. Dropping the last handle
// finalizes the promise: the stored value is released, the callback-context
// destructor (if one is still installed) is run, and, if p is still pending,
// a resource-leak diagnostic is emitted, as the promise was supposed to be
// settled in some way before destruction.
func (p *Promise[T]) Unref() {
	if p == nil {
		warn("promise: Unref on a nil promise")
		return
	}

	switch n := p.refs.Add(-1); {
	case n == 0:
		p.finalize()
	case n < 0:
		warn("promise: Unref on a finalized promise")
	}
}

// finalize runs exactly once, on whichever goroutine dropped the last
// handle. The destructor of the callback context runs after the lock is
// released, like in SetChangeCallback, so it may re-enter the promise.
func (p *Promise[T]) finalize() {
	p.mu.Lock()
	r := p.loadResult()
	notify, data := p.changeNotify, p.changeData
	p.changeFn, p.changeData, p.changeNotify = nil, nil, nil
	var zero T
	p.val = zero
	p.mu.Unlock()

	if r == ResultPending {
		warn("promise: finalized while still pending")
	}
	if notify != nil {
		notify(data)
	}
}

// loadResult and storeResult access the mirrored result word.
// both must be called with mu held; lock-free readers go through Result.
func (p *Promise[T]) loadResult() Result {
	return Result(p.result.Load())
}

func (p *Promise[T]) storeResult(r Result) {
	p.result.Store(int32(r))
}
