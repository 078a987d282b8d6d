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

// Package validation provides a small fluent assertion builder used by
// config types across the module (SubscriberConfig, and friends) so their
// Validate methods read as a flat list of preconditions instead of a chain
// of if-err-return-err blocks.
package validation

import (
	"errors"

	"go.uber.org/multierr"
)

type opts struct {
	failFast bool
}

// Option configures a Validator.
type Option func(o *opts)

// FailFast stops AddAssertion from evaluating further assertions once the
// first failed one is recorded, so Validate reports only the earliest
// precondition that was violated.
func FailFast() Option {
	return func(o *opts) {
		o.failFast = true
	}
}

// Validator accumulates assertion failures and turns them into a single
// error. The zero value is a Validator without FailFast; New applies options.
type Validator struct {
	opts   opts
	errs   []error
	tipped bool
}

// New creates a Validator with the given options applied.
func New(options ...Option) *Validator {
	v := &Validator{}
	for _, opt := range options {
		opt(&v.opts)
	}
	return v
}

// AddAssertion records msg as a violation when cond is false. Once
// FailFast has tripped on a prior violation, further calls are no-ops so
// Validate surfaces only the first failure encountered.
func (v *Validator) AddAssertion(cond bool, msg string) *Validator {
	if v.opts.failFast && v.tipped {
		return v
	}
	if !cond {
		v.errs = append(v.errs, errors.New(msg))
		v.tipped = true
	}
	return v
}

// Validate returns nil when every recorded assertion held, or the
// combination of every violation otherwise.
func (v *Validator) Validate() error {
	return multierr.Combine(v.errs...)
}
