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

// Package future implements a single-producer, single-consumer promise/
// future primitive. A Future[T] observes the result of an asynchronous
// computation — pending, fulfilled with a T, or rejected with a
// *futerr.Error — and is move-only and single-shot: attaching a
// continuation (Then, Catch, ...) consumes the handle. There is no
// blocking read; a value can only be observed by attaching a continuation.
//
// Chained continuations run on the Trampoline (trampoline.go), so a chain
// of N already-settled continuations dispatches in constant stack space
// regardless of N.
package future

import (
	"runtime"

	"github.com/nodeforge/futura/future/futerr"
)

// Future is a move-only, possibly-null reference to a Shared State. Then
// and Catch consume it: after either call returns, the receiver's internal
// state is cleared and Valid reports false.
//
// The zero Future is invalid (as if already consumed).
type Future[T any] struct {
	st *sharedState
}

// Promise is a move-only, possibly-null producer handle paired with a
// Future over the same Shared State. SetValue and SetException each
// consume it.
//
// The zero Promise is invalid (as if already consumed).
type Promise[T any] struct {
	st   *sharedState
	diag *diagnostics
}

// MakePromise allocates a Shared State and returns the Promise/Future pair
// that share it. T must not be the reserved Empty-tag type or the
// error-token type; violating this panics immediately, since Go cannot
// reject it at compile time for an arbitrary type parameter.
func MakePromise[T any](opts ...PromiseOption) (*Promise[T], *Future[T]) {
	rejectReserved[T]()
	diag := buildDiagnostics(opts)
	st := newState(diag)
	p := &Promise[T]{st: st, diag: diag}
	runtime.SetFinalizer(p, finalizePromise[T])
	return p, &Future[T]{st: st}
}

// MakeReadyValue allocates a Shared State pre-fulfilled with v.
func MakeReadyValue[T any](v T) *Future[T] {
	rejectReserved[T]()
	st := newState(nil)
	st.satisfy(v, nil) // cannot fail: st was just allocated, cell is Empty
	return &Future[T]{st: st}
}

// MakeReadyError allocates a Shared State pre-fulfilled with err.
func MakeReadyError[T any](err error) *Future[T] {
	rejectReserved[T]()
	st := newState(nil)
	st.satisfy(nil, futerr.Wrap(err))
	return &Future[T]{st: st}
}

// Valid reports whether f still references a Shared State. A Future
// becomes invalid once Then/Catch has consumed it.
func (f *Future[T]) Valid() bool { return f != nil && f.st != nil }

// Ready reports whether the underlying cell has settled (Value or Error).
// It does not consume f.
func (f *Future[T]) Ready() bool { return f.Valid() && f.st.ready() }

// consume detaches and returns f's Shared State, leaving f invalid. Returns
// nil if f was already invalid.
func (f *Future[T]) consume() *sharedState {
	if f == nil {
		return nil
	}
	st := f.st
	f.st = nil
	return st
}

// SetValue fulfills the promise with v. Consumes p. Returns
// futerr.ErrAlreadySatisfied (wrapped as a plain error) if p is invalid or
// its Shared State was already settled.
func (p *Promise[T]) SetValue(v T) error {
	return p.settle(v, nil)
}

// SetException rejects the promise with err. Consumes p.
func (p *Promise[T]) SetException(err error) error {
	return p.settle(nil, futerr.Wrap(err))
}

func (p *Promise[T]) settle(v any, fe *futerr.Error) error {
	if p == nil || p.st == nil {
		return futerr.ErrAlreadySatisfied
	}
	st := p.st
	p.st = nil
	runtime.SetFinalizer(p, nil)

	c, ok := st.satisfy(v, fe)
	if !ok {
		return futerr.ErrAlreadySatisfied
	}
	if c != nil {
		run(work{cont: c, src: st})
	}
	return nil
}

// Abandon explicitly discards the promise without satisfying it, injecting
// a broken-promise error into the Shared State (and draining any waiting
// continuation through the Trampoline), exactly as if the handle had been
// destroyed. This is the deterministic counterpart to the best-effort
// finalizer installed by MakePromise: call it when a promise is known to be
// going out of scope unsatisfied (e.g. the producer's context was
// canceled) rather than waiting on garbage collection. A no-op if the
// promise was already satisfied or abandoned.
func (p *Promise[T]) Abandon() {
	if p == nil || p.st == nil {
		return
	}
	st := p.st
	diag := p.diag
	p.st = nil
	runtime.SetFinalizer(p, nil)
	injectBrokenPromise(st, diag)
}

func injectBrokenPromise(st *sharedState, diag *diagnostics) {
	c, ok := st.satisfy(nil, futerr.New(futerr.KindBrokenPromise, "promise abandoned before satisfaction"))
	if !ok {
		return
	}
	diag.logBrokenPromise()
	if c != nil {
		run(work{cont: c, src: st})
	}
}

// finalizePromise is the best-effort backstop for a Promise dropped without
// an explicit Abandon/SetValue/SetException call, e.g. because the
// producer goroutine returned early. Finalizers run on Go's own schedule
// (possibly never, if the program exits first), so Abandon is the only
// deterministic way to observe a broken promise in a test.
func finalizePromise[T any](p *Promise[T]) {
	if p.st == nil {
		return
	}
	injectBrokenPromise(p.st, p.diag)
}
