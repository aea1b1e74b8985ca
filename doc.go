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

// Package promise provides a thread-safe, reference-counted container for a
// single value that becomes available later.
//
// A Promise is created by a producer with New, handed (via Ref) to any number
// of consumers, and settled exactly once by exactly one of three calls:
// Fulfill, which attaches a value, Cancel, which aborts the operation, or
// Invalidate, which records that the operation was dropped without completing.
// Consumers block in Wait until one of those calls is made.
//
// A Promise starts out with a Result of ResultPending and only ever
// transitions out of that result into exactly one of the other Result values.
// The final result is whichever settling call is made first; the remaining
// calls become no-ops.
//
// Fulfill, Cancel, and Invalidate may all be called from different threads,
// with two restrictions on ordering:
//
//  1. Fulfill and Cancel cannot be called after Invalidate.
//  2. Fulfill and Cancel cannot be called twice.
//
// Breaking either restriction is a contract violation in the caller. It is
// diagnosed through the package logger (see SetLogger) and the call becomes a
// no-op; it never corrupts the promise or changes its result. The remaining
// late calls, Cancel after Fulfill, Fulfill after Cancel, and Invalidate after
// anything, are expected outcomes of concurrent use and are silently ignored.
//
// A change callback can be installed with SetChangeCallback. It is invoked
// synchronously, exactly once, on the transition out of ResultPending, while
// the promise's internal lock is held, so it must not block and must not call
// back into any blocking method of the same promise.
//
// The lifetime of a Promise is controlled by a reference count. New returns a
// promise with one reference. Every additional holder acquires its own with
// Ref and releases it with Unref; dropping the last reference finalizes the
// promise, releasing the stored value and the callback context. Finalizing a
// promise that is still pending is diagnosed as a resource leak, as someone
// was supposed to settle it first.
package promise
