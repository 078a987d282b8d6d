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

import "github.com/nodeforge/futura/logger"

// diagnostics is the core's only touchpoint with the project's logger
// package It is optional and, by default, nil: a
// nil *diagnostics logs nothing, so the hot settle path pays no cost unless
// a caller opted in via WithDiagnostics.
type diagnostics struct {
	log logger.Logger
}

// logPanic warns about a panic recovered from inside a continuation's user
// function. No-op if d is nil or was built without a logger.
func (d *diagnostics) logPanic(err error) {
	if d == nil || d.log == nil {
		return
	}
	d.log.Warnw("future: recovered panic in continuation", "error", err)
}

// logBrokenPromise warns about a broken-promise error being injected into a
// state whose Promise handle was abandoned or garbage collected.
func (d *diagnostics) logBrokenPromise() {
	if d == nil || d.log == nil {
		return
	}
	d.log.Warn("future: promise abandoned before satisfaction, injecting broken-promise error")
}
