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

// Package pathutil sanitizes untrusted archive paths before they ever touch
// the filesystem during extraction.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Sanitize retains only the "normal" components of dirty: roots, volume/drive
// prefixes, "." and ".." components are all dropped. The result is always a
// relative path safe to join under a destination directory, even when dirty
// was crafted to read as "../../etc/passwd" or "C:\Windows".
func Sanitize(dirty string) string {
	dirty = strings.ReplaceAll(filepath.ToSlash(dirty), `\`, "/")
	parts := strings.Split(dirty, "/")

	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "", ".", "..":
			continue
		default:
			if isVolumePrefix(p) {
				continue
			}
			kept = append(kept, p)
		}
	}

	return filepath.Join(kept...)
}

// isVolumePrefix reports whether p looks like a Windows drive letter
// component ("C:") that survived the slash split.
func isVolumePrefix(p string) bool {
	return len(p) == 2 && p[1] == ':' && ((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z'))
}
