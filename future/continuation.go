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

// invokeResult is what a then/catch continuation's type-erased user-function
// wrapper hands back to continueWith: either a plain value, a reference to a
// Future the user function returned (to be flattened), or an error.
type invokeResult struct {
	value    any
	inner    *futureRef // non-nil when the user fn returned a Future[R]
	err      *futerr.Error
	isFuture bool
}

// futureRef is the type-erased handle to a user-returned Future[R], used
// only to carry it from Then[T,R]/Catch[T]'s generic call site (which knows
// R) down to the non-generic attach-continuation machinery (which doesn't
// need to).
type futureRef struct {
	st    *sharedState
	valid bool
}

// settleAndAdvance writes v/err into dst and, if dst already had a
// continuation waiting (because chain() was called on it, from this or
// another goroutine, between its creation and now — possible since dst is
// handed out as part of a Future[R] before this continuation fires), folds
// it into the next
// work unit. This is the step shared by all three continuation kinds that
// extracts whatever continuation was already waiting on D and hands it to
// the caller as the next work unit.
func settleAndAdvance(dst *sharedState, v any, err *futerr.Error) work {
	c, ok := dst.satisfy(v, err)
	if !ok {
		// Only reachable if dst was already settled, which cannot happen
		// for a destination state: exactly one continuation ever targets
		// it and a continuation fires at most once.
		return work{}
	}
	if c == nil {
		return work{}
	}
	return work{cont: c, src: dst}
}

// recoverUserFn calls fn and converts any panic into a KindUserPanic error,
// so a panicking user continuation settles its destination state instead of
// unwinding through the Trampoline and leaving that state stuck Unset
// forever. This is the Go rendering of the "Exceptions during F are
// caught and converted into an Error written into D.
func recoverUserFn(fn func() invokeResult) (result invokeResult) {
	defer func() {
		if r := recover(); r != nil {
			result = invokeResult{err: futerr.New(futerr.KindUserPanic, "recovered panic: %v", r)}
		}
	}()
	return fn()
}

// thenContinuation implements the then-continuation<T,F>.
type thenContinuation struct {
	dst    *sharedState
	invoke func(v any) invokeResult
	diag   *diagnostics
}

func (tc *thenContinuation) continueWith(src *sharedState) work {
	tag, v, srcErr := src.take()
	if tag == cellError {
		// An incoming Error bypasses F entirely and is propagated verbatim.
		return settleAndAdvance(tc.dst, nil, srcErr)
	}

	res := recoverUserFn(func() invokeResult { return tc.invoke(v) })
	if res.err != nil {
		tc.diag.logPanic(res.err)
		return settleAndAdvance(tc.dst, nil, res.err)
	}
	if res.isFuture {
		return attachInner(tc.dst, res.inner)
	}
	return settleAndAdvance(tc.dst, res.value, nil)
}

// catchContinuation implements the catch-continuation<T,F>.
type catchContinuation struct {
	dst    *sharedState
	invoke func(err *futerr.Error) invokeResult
	diag   *diagnostics
}

func (cc *catchContinuation) continueWith(src *sharedState) work {
	tag, v, srcErr := src.take()
	if tag != cellError {
		// A Value forwards unchanged; F is not invoked.
		return settleAndAdvance(cc.dst, v, nil)
	}

	res := recoverUserFn(func() invokeResult { return cc.invoke(srcErr) })
	if res.err != nil {
		cc.diag.logPanic(res.err)
		return settleAndAdvance(cc.dst, nil, res.err)
	}
	if res.isFuture {
		return attachInner(cc.dst, res.inner)
	}
	return settleAndAdvance(cc.dst, res.value, nil)
}

// attachContinuation implements the attach-continuation<T,R>: no
// user function, it simply moves the source cell wholesale into dst.
type attachContinuation struct {
	dst *sharedState
}

func (ac *attachContinuation) continueWith(src *sharedState) work {
	tag, v, err := src.take()
	if tag == cellError {
		return settleAndAdvance(ac.dst, nil, err)
	}
	return settleAndAdvance(ac.dst, v, nil)
}

// attachInner installs an attach-continuation that pipes inner's eventual
// result into dst — the monadic-unwrap path taken when a user function
// returns a Future[R] instead of a plain R. If the inner future handle is
// invalid, dst
// is fulfilled with an invalid-future error immediately.
func attachInner(dst *sharedState, inner *futureRef) work {
	if inner == nil || !inner.valid || inner.st == nil {
		return settleAndAdvance(dst, nil, futerr.New(futerr.KindInvalidFuture, "continuation returned an invalid future"))
	}
	ac := &attachContinuation{dst: dst}
	c, ready := inner.st.chain(ac)
	if ready {
		return work{cont: c, src: inner.st}
	}
	// Installed into inner's slot; the Trampoline that eventually settles
	// inner will pick it up. Nothing more to drive right now.
	return work{}
}
