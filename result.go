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

import "log/slog"

// Result is the resolution outcome of a Promise.
//
// ResultPending is the sole initial value. The other three are terminal:
// once a promise leaves ResultPending, its Result never changes again.
type Result int32

const (
	// ResultPending means the promise has not been settled yet.
	ResultPending Result = iota

	// ResultFulfilled means the promise was settled with a value,
	// by a Fulfill call.
	ResultFulfilled

	// ResultCancelled means the operation behind the promise was aborted,
	// by a Cancel call.
	ResultCancelled

	// ResultInvalidated means the carrier of the promise was dropped
	// without anyone settling it, by an Invalidate call.
	ResultInvalidated
)

// Settled returns true, only if r is one of the terminal results.
func (r Result) Settled() bool {
	return r != ResultPending
}

func (r Result) String() string {
	switch r {
	case ResultPending:
		return "pending"
	case ResultFulfilled:
		return "fulfilled"
	case ResultCancelled:
		return "cancelled"
	case ResultInvalidated:
		return "invalidated"
	default:
		// only user-created Result values may result in reaching this
		return "<UnknownResult>"
	}
}

// LogValue implements [slog.LogValuer], so diagnostics carry the result
// by name rather than by number.
func (r Result) LogValue() slog.Value {
	return slog.StringValue(r.String())
}
