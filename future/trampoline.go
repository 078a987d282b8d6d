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

// continuation is the uniform dispatch interface shared by the three
// concrete continuation shapes (then, catch, attach). Dispatch
// produces at most one follow-up work unit; continueWith is only ever
// invoked once the source's cell is known to be set.
type continuation interface {
	continueWith(src *sharedState) work
}

// work pairs a follow-up continuation with the source state it should read
// from. A nil cont terminates the chain (the trampoline contract).
type work struct {
	cont continuation
	src  *sharedState
}

// done reports whether this work unit ends the chain.
func (w work) done() bool { return w.cont == nil }

// run is the Trampoline: it drives a (continuation, state) pair
// iteratively instead of letting continueWith call the next continuation
// recursively, so a chain of N already-ready continuations dispatches in
// constant stack space regardless of N. This is the sole dispatch
// path in the system — every call site that settles a state (promise
// satisfaction, then/catch registration against an already-ready future,
// attach-continuation completion) funnels its follow-up work through run.
func run(w work) {
	for !w.done() {
		w = w.cont.continueWith(w.src)
	}
}
