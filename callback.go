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

// ChangeFunc is the type of the change callback installed with
// SetChangeCallback. It's invoked synchronously, exactly once, on the
// transition of p out of ResultPending, with the data the callback was
// installed with.
//
// It runs while the promise's internal lock is held, with the new result
// already visible through p.Result(). It must be fast and non-blocking, and
// in particular must not call Wait, Value, or any other locking method of
// the same promise.
type ChangeFunc[T any] func(p *Promise[T], data any)

// SetChangeCallback replaces the change callback of p with the triple
// (fn, data, notify). notify, which may be nil, is the destructor of data:
// it's run with data when the triple is replaced by a later call, or at
// finalization if the triple is still installed.
//
// At most one callback is installed at a time. The destructor of the
// outgoing context runs after the promise's lock is released, so it may
// call back into the same promise without deadlocking.
func (p *Promise[T]) SetChangeCallback(fn ChangeFunc[T], data any, notify func(data any)) {
	if p == nil {
		warn("promise: SetChangeCallback on a nil promise")
		return
	}

	p.mu.Lock()
	prevNotify, prevData := p.changeNotify, p.changeData
	p.changeFn = fn
	p.changeData = data
	p.changeNotify = notify
	p.mu.Unlock()

	if prevNotify != nil {
		prevNotify(prevData)
	}
}
