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
	"sync"

	"github.com/nodeforge/futura/future/futerr"
)

// sharedState is the reference-counted (by Go's ordinary garbage collector,
// not an explicit refcount) rendezvous between a Promise and a Future: it
// owns exactly one cell and at most one pending continuation.
//
// Every operation below takes st.mu, a mutex-guarded critical section
// rather than single-goroutine-only access: the demonstration harness
// settles promises from goroutines other than the one that attached
// continuations (gRPC callbacks, Pub/Sub acks, scheduled ticks), so a core
// that only promised correctness on a single goroutine would be unusable
// by its own collaborators. Invariants R1/R2/S1/S2 hold as postconditions
// under mu; the Trampoline stays lock-free because a continuation is
// always transferred out of its state under the lock before continueWith
// is invoked on it, so no two goroutines ever hold the same continuation
// (see trampoline.go).
type sharedState struct {
	mu   sync.Mutex
	cell cell
	cont continuation

	diag *diagnostics
}

func newState(diag *diagnostics) *sharedState {
	return &sharedState{diag: diag}
}

// ready reports whether the cell is non-Empty.
func (s *sharedState) ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cell.isSet()
}

// chain installs c into the continuation slot if the cell is still Empty.
// If the cell is already set, c is handed back to the caller (ok=true) so
// the caller feeds it straight into the Trampoline instead of recursing.
// Attempting to chain a second continuation onto a state that already has
// one attached is a programming error (invariant S1) and panics, matching
// the assertion a single-threaded implementation would use for this case.
func (s *sharedState) chain(c continuation) (ready continuation, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cell.isSet() {
		return c, true
	}
	if s.cont != nil {
		panic("future: invariant S1 violated: a continuation is already attached to this state")
	}
	s.cont = c
	return nil, false
}

// satisfy writes either a value or an error into the cell (whichever err is
// nil/non-nil selects) and, in the same critical section, extracts any
// continuation already waiting in the slot (invariant S2: satisfy is one of
// the exactly two paths, alongside chain, that ever removes a continuation
// from a slot). Returns the extracted continuation, or ok=false if the cell
// was already set (double satisfaction, a misuse error the caller reports).
func (s *sharedState) satisfy(v any, err *futerr.Error) (next continuation, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cell.isSet() {
		return nil, false
	}
	if err != nil {
		s.cell.setErr(err)
	} else {
		s.cell.set(v)
	}
	c := s.cont
	s.cont = nil
	return c, true
}

// take reads the cell's contents. Only ever called by a continuation's
// continueWith against its source state, which by construction is only
// invoked once the source cell is known to be set (either chain() observed
// it set, or satisfy() just set it and handed the waiting continuation to
// the Trampoline) so there is no need to re-check isSet here.
func (s *sharedState) take() (cellTag, any, *futerr.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cell.take()
}
