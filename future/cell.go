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

// cellTag discriminates the three inhabitants of a Result Cell: pending,
// value, or error.
type cellTag uint8

const (
	cellEmpty cellTag = iota
	cellValue
	cellError
)

// cell is the ternary Result Cell: pending / value / error, type-erased to
// `any` at this layer. The generic Then/ThenFuture wrappers in ops.go are
// the only place the concrete T is recovered, via a type assertion
// performed with full knowledge of T at the call site that installed the
// continuation reading this cell.
//
// Invariant R1: once tag leaves cellEmpty it never returns.
// Invariant R2: the Empty->Value and Empty->Error transitions each happen
// at most once. Both invariants are enforced by sharedState, which is the
// only code that ever calls set/setErr, always under its mutex.
type cell struct {
	tag   cellTag
	value any
	err   *futerr.Error
}

// isSet reports whether the cell has left cellEmpty.
func (c *cell) isSet() bool { return c.tag != cellEmpty }

// set transitions the cell to cellValue. Callers must guarantee the cell
// is currently cellEmpty.
func (c *cell) set(v any) {
	c.tag = cellValue
	c.value = v
}

// setErr transitions the cell to cellError. Callers must guarantee the
// cell is currently cellEmpty.
func (c *cell) setErr(err *futerr.Error) {
	c.tag = cellError
	c.err = err
}

// take copies the cell's contents out. The cell is the embedded field of a
// sharedState that is either being dismantled (its value has been handed to
// exactly one continuation) or was never going to be read again, so leaving
// the tag in place rather than resetting to cellEmpty is harmless and
// preserves R1 (a cell that left Empty never reports Empty again).
func (c *cell) take() (cellTag, any, *futerr.Error) {
	return c.tag, c.value, c.err
}
