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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeforge/futura/future/futerr"
)

func TestCellStartsEmpty(t *testing.T) {
	var c cell
	require.False(t, c.isSet())
	tag, v, err := c.take()
	require.Equal(t, cellEmpty, tag)
	require.Nil(t, v)
	require.Nil(t, err)
}

func TestCellSetValue(t *testing.T) {
	var c cell
	c.set(42)
	require.True(t, c.isSet())
	tag, v, err := c.take()
	require.Equal(t, cellValue, tag)
	require.Equal(t, 42, v)
	require.Nil(t, err)
}

func TestCellSetError(t *testing.T) {
	var c cell
	fe := futerr.New(futerr.KindUser, "boom")
	c.setErr(fe)
	require.True(t, c.isSet())
	tag, v, err := c.take()
	require.Equal(t, cellError, tag)
	require.Nil(t, v)
	require.Same(t, fe, err)
}

func TestCellNeverReturnsToEmptyAfterSet(t *testing.T) {
	var c cell
	c.set("x")
	require.True(t, c.isSet())
	tag, _, _ := c.take()
	require.NotEqual(t, cellEmpty, tag)
}
