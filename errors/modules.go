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

// Code blocks, one per spec.md §7 error kind. Each subsystem package owns a
// block of 100 so new codes can be added without colliding.
const (
	CodeIO                  CodeError = 1000
	CodeStore               CodeError = 1100
	CodeIncompleteBlobWrite CodeError = 1200
	CodeNotArchive          CodeError = 1300
	CodeLinkTextEncoding    CodeError = 1400
	CodePoolShutdown        CodeError = 1500
)

func init() {
	RegisterIdFctMessage(CodeIO, func(CodeError) string { return "I/O error" })
	RegisterIdFctMessage(CodeStore, func(CodeError) string { return "relational store error" })
	RegisterIdFctMessage(CodeIncompleteBlobWrite, func(CodeError) string {
		return "blob overwrite wrote fewer bytes than expected"
	})
	RegisterIdFctMessage(CodeNotArchive, func(CodeError) string { return "not a packrs archive" })
	RegisterIdFctMessage(CodeLinkTextEncoding, func(CodeError) string {
		return "symlink target cannot be represented as a platform path"
	})
	RegisterIdFctMessage(CodePoolShutdown, func(CodeError) string { return "task pool is shut down" })
}
