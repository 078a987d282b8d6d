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

import "github.com/nodeforge/futura/future/futerr"

// Go methods cannot introduce a type parameter of their own, so then/catch
// are free functions here rather than methods on Future[T]: R is fixed by
// fn, not by the receiver. Each pair below (Then/ThenFuture, Catch/
// CatchFuture) covers the two shapes a user function can take — returning a
// plain R, or returning a *Future[R] to be flattened — since Go cannot
// dispatch on a function's return type to pick between them automatically.

// Then consumes f and registers fn to run once f is fulfilled. fn receives
// the value and returns a plain R. Errors bypass fn and propagate to the
// returned future unchanged. Panics inside fn are recovered and reported as
// a KindUserPanic error on the returned future instead of propagating.
func Then[T, R any](f *Future[T], fn func(T) R) *Future[R] {
	return registerThen[T, R](f, func(v any) invokeResult {
		return invokeResult{value: fn(v.(T))}
	})
}

// ThenFuture is Then's flattening counterpart: fn returns a *Future[R]
// rather than an R, and the returned future transparently adopts that inner
// future's eventual value instead of wrapping it (monadic unwrapping). If
// fn returns an invalid future, the returned future settles with a
// KindInvalidFuture error.
func ThenFuture[T, R any](f *Future[T], fn func(T) *Future[R]) *Future[R] {
	return registerThen[T, R](f, func(v any) invokeResult {
		return invokeResult{isFuture: true, inner: toFutureRef(fn(v.(T)))}
	})
}

// toFutureRef detaches a user-returned Future's Shared State, capturing its
// validity before consume() clears it.
func toFutureRef[R any](inner *Future[R]) *futureRef {
	valid := inner.Valid()
	return &futureRef{st: inner.consume(), valid: valid}
}

func registerThen[T, R any](f *Future[T], invoke func(v any) invokeResult) *Future[R] {
	rejectReserved[R]()
	if !f.Valid() {
		dst := newState(nil)
		dst.satisfy(nil, futerr.ErrNoState)
		return &Future[R]{st: dst}
	}
	src := f.consume()
	dst := newState(src.diag)
	tc := &thenContinuation{dst: dst, invoke: invoke, diag: src.diag}

	c, ready := src.chain(tc)
	if ready {
		run(work{cont: c, src: src})
	}
	return &Future[R]{st: dst}
}

// Catch consumes f and registers fn to run only if f is rejected. fn
// receives the error and returns a plain T, recovering the chain. A
// fulfilled value forwards unchanged and fn is not invoked. Panics inside
// fn are recovered the same way Then's are.
func Catch[T any](f *Future[T], fn func(*futerr.Error) T) *Future[T] {
	return registerCatch[T](f, func(err *futerr.Error) invokeResult {
		return invokeResult{value: fn(err)}
	})
}

// CatchFuture is Catch's flattening counterpart: fn returns a *Future[T]
// instead of a plain T.
func CatchFuture[T any](f *Future[T], fn func(*futerr.Error) *Future[T]) *Future[T] {
	return registerCatch[T](f, func(err *futerr.Error) invokeResult {
		return invokeResult{isFuture: true, inner: toFutureRef(fn(err))}
	})
}

func registerCatch[T any](f *Future[T], invoke func(err *futerr.Error) invokeResult) *Future[T] {
	if !f.Valid() {
		dst := newState(nil)
		dst.satisfy(nil, futerr.ErrNoState)
		return &Future[T]{st: dst}
	}
	src := f.consume()
	dst := newState(src.diag)
	cc := &catchContinuation{dst: dst, invoke: invoke, diag: src.diag}

	c, ready := src.chain(cc)
	if ready {
		run(work{cont: c, src: src})
	}
	return &Future[T]{st: dst}
}
