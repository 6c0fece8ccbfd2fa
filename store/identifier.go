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

package store

import (
	"os"

	liberr "github.com/nabbar/packrs/errors"
)

// sqliteMagic is the fixed 16-byte header every SQLite database file opens
// with.
var sqliteMagic = []byte("SQLite format 3\x00")

// IsArchive reports whether path is a packrs archive: a regular file larger
// than the magic header, whose header matches the embedded-store magic, and
// whose item table exists and is non-empty. A failed schema probe (wrong
// file wearing the same storage engine) returns false, not an error; only
// I/O failures are surfaced as errors.
func IsArchive(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, liberr.CodeIO.Error(err)
	}
	if !fi.Mode().IsRegular() || fi.Size() <= int64(len(sqliteMagic)) {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, liberr.CodeIO.Error(err)
	}
	defer f.Close()

	head := make([]byte, len(sqliteMagic))
	if _, err := f.Read(head); err != nil {
		return false, liberr.CodeIO.Error(err)
	}
	for i, b := range sqliteMagic {
		if head[i] != b {
			return false, nil
		}
	}

	s, err := OpenReadOnly(path)
	if err != nil {
		// Opening as a store failed: not one of ours, not an I/O error
		// against the caller's original request.
		return false, nil
	}
	defer s.Close()

	var count int64
	if err := s.DB().Table("item").Count(&count).Error; err != nil {
		return false, nil
	}
	return count > 0, nil
}
