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
	"log/slog"
	"sync/atomic"
)

// logger holds the logger set through SetLogger.
// a nil value means slog.Default, resolved at emit time.
var logger atomic.Pointer[slog.Logger]

// SetLogger routes the package's diagnostics to l. Passing nil restores the
// default of [slog.Default].
//
// The package logs only usage-contract violations (for example, fulfilling
// a promise twice, or reading the value of an unfulfilled promise) and the
// finalized-while-pending resource leak, all at [slog.LevelWarn]. They are
// programming errors in the caller, not runtime failures: the offending call
// is always turned into a no-op with a safe default return.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

func warn(msg string, args ...any) {
	l := logger.Load()
	if l == nil {
		l = slog.Default()
	}
	l.Warn(msg, args...)
}
