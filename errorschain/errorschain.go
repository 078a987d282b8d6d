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

// Package errorschain chains a sequence of fallible cleanup steps and
// reduces them to a single error, the way a shutdown path that must run
// every step regardless of earlier failures still needs to report back.
package errorschain

import "go.uber.org/multierr"

type opts struct {
	returnFirst bool
}

// Option configures a Chain.
type Option func(o *opts)

// ReturnFirst makes Error return only the first non-nil error AddError saw,
// instead of every error combined.
func ReturnFirst() Option {
	return func(o *opts) {
		o.returnFirst = true
	}
}

// Chain runs a sequence of steps, each contributing its error via AddError,
// and reduces them to one error with Error.
type Chain struct {
	opts  opts
	errs  []error
	first error
}

// New creates a Chain with the given options applied.
func New(options ...Option) *Chain {
	c := &Chain{}
	for _, opt := range options {
		opt(&c.opts)
	}
	return c
}

// AddError records err, if non-nil, as part of the chain. Call sites are
// expected to chain every step unconditionally so every cleanup step runs
// regardless of an earlier one's outcome.
func (c *Chain) AddError(err error) *Chain {
	if err == nil {
		return c
	}
	if c.first == nil {
		c.first = err
	}
	c.errs = append(c.errs, err)
	return c
}

// Error reduces the chain to a single error: nil when every step succeeded,
// the first error when ReturnFirst was set, or every error combined
// otherwise.
func (c *Chain) Error() error {
	if c.opts.returnFirst {
		return c.first
	}
	return multierr.Combine(c.errs...)
}
