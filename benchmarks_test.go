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
	"testing"

	"github.com/avkit/promise"
)

func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		p := promise.New[int]()
		p.Invalidate()
		p.Unref()
	}
}

func BenchmarkFulfillWait(b *testing.B) {
	for i := 0; i < b.N; i++ {
		p := promise.New[int]()
		p.Fulfill(i)
		_ = p.Wait()
		p.Unref()
	}
}

func BenchmarkWaitSettled(b *testing.B) {
	p := promise.New[int]()
	p.Fulfill(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Wait()
	}
	b.StopTimer()
	p.Unref()
}

func BenchmarkResult(b *testing.B) {
	p := promise.New[int]()
	p.Fulfill(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Result()
	}
	b.StopTimer()
	p.Unref()
}
