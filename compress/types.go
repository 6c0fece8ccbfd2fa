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

// Package compress picks the codec a bundle is compressed with. Compression
// in packrs is always archive-wide, applied once per bundle, never per file.
package compress

import "bytes"

// Algorithm identifies a bundle compression codec.
type Algorithm uint8

const (
	None Algorithm = iota
	Gzip
	Bzip2
	LZ4
	XZ
)

// Default is the algorithm the packer uses when none is specified.
const Default = LZ4

func List() []Algorithm {
	return []Algorithm{None, Gzip, Bzip2, LZ4, XZ}
}

func (a Algorithm) String() string {
	switch a {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case LZ4:
		return "lz4"
	case XZ:
		return "xz"
	default:
		return "none"
	}
}

func (a Algorithm) IsNone() bool {
	return a == None
}

// DetectHeader reports whether h begins with a's magic bytes. h must be at
// least 6 bytes.
func (a Algorithm) DetectHeader(h []byte) bool {
	if len(h) < 6 {
		return false
	}
	switch a {
	case Gzip:
		return bytes.Equal(h[0:2], []byte{0x1f, 0x8b})
	case Bzip2:
		return bytes.Equal(h[0:3], []byte{'B', 'Z', 'h'}) && h[3] >= '0' && h[3] <= '9'
	case LZ4:
		return bytes.Equal(h[0:4], []byte{0x04, 0x22, 0x4D, 0x18})
	case XZ:
		return bytes.Equal(h[0:6], []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00})
	default:
		return false
	}
}

// Detect sniffs a compressed bundle's header and returns the algorithm that
// produced it, falling back to None when no known magic matches (the bundle
// was written uncompressed).
func Detect(h []byte) Algorithm {
	for _, a := range []Algorithm{Gzip, Bzip2, LZ4, XZ} {
		if a.DetectHeader(h) {
			return a
		}
	}
	return None
}
