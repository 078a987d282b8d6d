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

// PromiseOption configures a Promise/Future pair at construction time.
type PromiseOption func(*diagnostics)

// WithDiagnostics attaches a structured logger that the pair will use to
// warn about broken promises and panics recovered from continuations. By
// default a Promise/Future pair logs nothing.
func WithDiagnostics(log logger.Logger) PromiseOption {
	return func(d *diagnostics) {
		d.log = log
	}
}

func buildDiagnostics(opts []PromiseOption) *diagnostics {
	if len(opts) == 0 {
		return nil
	}
	d := &diagnostics{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}
