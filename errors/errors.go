/*
 * MIT License
 *
 * Copyright (c) 2024 packrs contributors
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
 *
 */

package errors

import (
	"strings"
)

// Error is the interface satisfied by every error packrs raises. It carries
// a CodeError, a rendered message, and an optional chain of parent errors so
// a caller can ask "did this fail because of X" without string matching.
type Error interface {
	error

	Code() CodeError
	HasParent() bool
	Parents() []error
	Add(parents ...error)
	Is(err error) bool
}

type ers struct {
	code CodeError
	msg  string
	p    []error
}

func newError(code CodeError, msg string, parents ...error) Error {
	e := &ers{code: code, msg: msg}
	e.Add(parents...)
	return e
}

// New builds an Error from a raw numeric code and message, useful for call
// sites that have not pre-registered a Message function.
func New(code uint16, msg string, parents ...error) Error {
	return newError(CodeError(code), msg, parents...)
}

func (e *ers) Error() string {
	if e.msg == "" {
		return UnknownMessage
	}
	return e.msg
}

func (e *ers) Code() CodeError {
	return e.code
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) Parents() []error {
	return e.p
}

func (e *ers) Add(parents ...error) {
	for _, p := range parents {
		if p != nil {
			e.p = append(e.p, p)
		}
	}
}

// Is reports whether err matches this error by code (when err is also an
// Error) or by case-insensitive message comparison (for plain errors),
// searching the parent chain as well.
func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}

	if oe, ok := err.(Error); ok {
		if e.code != UnknownError && e.code == oe.Code() {
			return true
		}
	} else if strings.EqualFold(e.msg, err.Error()) {
		return true
	}

	for _, p := range e.p {
		if pe, ok := p.(Error); ok {
			if pe.Is(err) {
				return true
			}
		} else if _, coded := err.(Error); !coded && strings.EqualFold(p.Error(), err.Error()) {
			return true
		}
	}

	return false
}
