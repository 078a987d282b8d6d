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
	"reflect"

	"github.com/nodeforge/futura/future/futerr"
)

// Void is the distinguished void-result value: the value type for a Future
// that carries a completion signal rather than data. It is legal as a
// Future's type parameter — unlike the two reserved types below, it only
// ever occupies the Value slot of a cell, never stands for Empty.
type Void struct{}

// emptyTag is the reserved Empty-tag type: an internal marker that exists
// solely so a well-formed reserved-type check has a concrete type to
// reject. It is unexported and carries no data; no user code can construct
// a value of it, but a type parameter identical to it (via an alias) is
// still rejected, matching the "identical-to or implicitly-convertible-to"
// rule even though Go has no implicit conversions to trigger the second
// half of that rule in practice.
type emptyTag struct{ _ byte }

var (
	emptyTagType  = reflect.TypeOf(emptyTag{})
	errorTokenTyp = reflect.TypeOf(futerr.Error{})
	errorTokenPtr = reflect.TypeOf((*futerr.Error)(nil))
)

// rejectReserved panics if T is one of the two reserved types (the
// Empty-tag type or the error-token type). Go generics cannot express "T is
// not X" as a constraint, so this is the earliest point such a violation
// can be caught: once, at the single call site inside each factory
// function, rather than deferred into the state machine. This is the Go
// stand-in for the source's compile-time rejection of reserved types.
func rejectReserved[T any]() {
	t := reflect.TypeFor[T]()
	if t == emptyTagType || t == errorTokenTyp || t == errorTokenPtr {
		panic("future: " + t.String() + " is a reserved type and cannot be used as a Future value type")
	}
}
