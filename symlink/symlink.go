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

// Package symlink round-trips symlink targets as raw bytes. A Go string is
// just a byte sequence, so no encoding/decoding step is needed beyond what
// the filesystem calls already do; the only failure mode worth rejecting is
// a target containing a NUL byte, which no POSIX path can represent.
package symlink

import (
	"os"
	"strings"

	liberr "github.com/nabbar/packrs/errors"
)

// ReadTarget returns the raw link target of the symlink at path, as stored
// bytes (not resolved, not validated against the filesystem it points at).
func ReadTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", liberr.CodeIO.Error(err)
	}
	return target, nil
}

// Create writes a symlink at path pointing at target. target is used
// verbatim; callers are responsible for any sanitization of path itself.
func Create(target, path string) error {
	if err := validate(target); err != nil {
		return err
	}
	if err := os.Symlink(target, path); err != nil {
		return liberr.CodeIO.Error(err)
	}
	return nil
}

// validate rejects link targets that cannot be represented on the
// filesystem: a NUL byte truncates a C string, so any target containing one
// could not have been produced by a real symlink and is almost certainly
// corrupted archive data.
func validate(target string) error {
	if strings.IndexByte(target, 0) >= 0 {
		return liberr.CodeLinkTextEncoding.Error()
	}
	return nil
}
