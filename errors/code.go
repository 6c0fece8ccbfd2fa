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

// Package errors provides a code-keyed error taxonomy used throughout packrs
// instead of ad-hoc sentinel errors. Each subsystem registers a contiguous
// block of CodeError values with a message function, then raises errors by
// calling Code.Error(parents...).
package errors

import (
	"sort"
)

// CodeError is a numeric error code, grouped by subsystem in blocks of 100.
type CodeError uint16

// Message renders a CodeError to a human string.
type Message func(code CodeError) (message string)

var idMsgFct = make(map[CodeError]Message)

const (
	// UnknownError is the fallback code for an error with no registered message.
	UnknownError CodeError = 0

	UnknownMessage = "unknown error"
)

// RegisterIdFctMessage registers the message function responsible for every
// code greater than or equal to minCode (until the next registered block).
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
	orderMapMessage()
}

// ExistInMapMessage reports whether code resolves to a non-empty message.
func ExistInMapMessage(code CodeError) bool {
	f, ok := idMsgFct[findBlock(code)]
	return ok && f(code) != ""
}

func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Message returns the registered message for this code, or UnknownMessage.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}
	if f, ok := idMsgFct[findBlock(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}
	return UnknownMessage
}

// Error builds a new Error from this code, optionally wrapping parents.
func (c CodeError) Error(parents ...error) Error {
	return newError(c, c.Message(), parents...)
}

func blockKeys() []int {
	keys := make([]int, 0, len(idMsgFct))
	for k := range idMsgFct {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	return keys
}

func orderMapMessage() {
	// rebuilds the registry by inserting blocks in ascending key order. Go
	// map iteration order stays unspecified regardless; code that needs the
	// blocks in order goes through blockKeys, which sorts them.
	ordered := make(map[CodeError]Message, len(idMsgFct))
	for _, k := range blockKeys() {
		ordered[CodeError(k)] = idMsgFct[CodeError(k)]
	}
	idMsgFct = ordered
}

func findBlock(code CodeError) CodeError {
	var res CodeError
	for _, k := range blockKeys() {
		if CodeError(k) <= code && CodeError(k) > res {
			res = CodeError(k)
		}
	}
	return res
}
