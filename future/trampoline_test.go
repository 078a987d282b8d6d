/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package future

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTrampolineHandlesDeepChainWithoutStackGrowth builds a chain of
// 100,000 already-ready states wired one after another and drives it
// through run. A recursive continueWith implementation would overflow or
// at least grow the goroutine stack by a large, measurable amount for a
// chain this deep; run's iterative loop does not.
func TestTrampolineHandlesDeepChainWithoutStackGrowth(t *testing.T) {
	const n = 100_000

	type link struct {
		st *sharedState
	}
	links := make([]*link, n)
	for i := range links {
		st := newState(nil)
		_, _ = st.satisfy(i, nil)
		links[i] = &link{st: st}
	}

	hits := 0
	// Build a single work chain: each continuation's continueWith returns
	// the next hop as the follow-up work unit, exactly as
	// thenContinuation/catchContinuation/attachContinuation do internally.
	var build func(i int) continuation
	build = func(i int) continuation {
		idx := i
		return continuationFunc(func(src *sharedState) work {
			hits++
			if idx+1 >= n {
				return work{}
			}
			return work{cont: build(idx + 1), src: links[idx+1].st}
		})
	}

	run(work{cont: build(0), src: links[0].st})
	require.Equal(t, n, hits)
}

// continuationFunc adapts a plain function to the continuation interface,
// for tests that want to drive the Trampoline without allocating a
// then/catch/attach continuation.
type continuationFunc func(src *sharedState) work

func (f continuationFunc) continueWith(src *sharedState) work { return f(src) }
