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

// Package futerr defines the error-token type that flows through a Future's
// Error branch, along with the core's misuse/structural error taxonomy.
//
// Error is itself one of the two reserved types (see future.rejectReserved):
// a Future[futerr.Error] or a Future[*futerr.Error] cannot be constructed,
// because the error-token type is already the carrier of the Error branch
// and letting it double as the Value branch would make the two
// indistinguishable at the point a continuation forwards or converts them.
package futerr

import "fmt"

// Kind classifies why an Error exists, per three-kind taxonomy:
// user errors are never tagged beyond KindUser (the core never interprets
// them); misuse and structural failures get a specific Kind so a caller can
// tell a broken promise from a double-satisfaction without string matching.
type Kind uint8

const (
	// KindUser wraps whatever error a user-supplied continuation returned
	// or a Promise was rejected with. The core never interprets it.
	KindUser Kind = iota
	// KindMisuse reports a programming error: operating on an invalid
	// handle, double-attaching a continuation, double-satisfying a promise.
	KindMisuse
	// KindBrokenPromise reports a Promise abandoned (explicitly discarded,
	// or garbage collected) before it was satisfied.
	KindBrokenPromise
	// KindInvalidFuture reports that a then/catch continuation returned a
	// Future whose handle was already invalid (null state).
	KindInvalidFuture
	// KindUserPanic reports a panic recovered from inside a user-supplied
	// continuation function.
	KindUserPanic
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindMisuse:
		return "misuse"
	case KindBrokenPromise:
		return "broken-promise"
	case KindInvalidFuture:
		return "invalid-future"
	case KindUserPanic:
		return "user-panic"
	default:
		return "unknown"
	}
}

// Error is the opaque, copyable error token carried by a Future's Error
// branch. It is intentionally small and comparable by message+kind rather
// than by pointer identity, since it crosses continuation boundaries freely.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// New creates an Error of the given Kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a KindUser Error that carries an underlying error for
// errors.Is/errors.As. Wrap(nil) returns nil, mirroring fmt.Errorf("%w", nil)
// footguns being a caller mistake rather than a valid Error value.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*Error); ok {
		return fe
	}
	return &Error{Kind: KindUser, Message: err.Error(), cause: err}
}

// Misuse creates a KindMisuse Error: the Go rendering of a synchronous
// "thrown at the call site" misuse signal, returned rather than panicked.
func Misuse(format string, args ...any) *Error {
	return New(KindMisuse, format, args...)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap supports errors.Is/errors.As against a wrapped cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// ErrNoState is the Misuse error carried by the future that Then/Catch return
// when the Future they are given is already null (consumed, or never valid).
var ErrNoState = Misuse("operation on an invalid (null) handle")

// ErrAlreadySatisfied is the Misuse error returned by a Promise operation
// on a handle that has already been used to satisfy its Shared State.
var ErrAlreadySatisfied = Misuse("promise has already been satisfied")
