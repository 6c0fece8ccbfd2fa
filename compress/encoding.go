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

package compress

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	liberr "github.com/nabbar/packrs/errors"
)

// Parse maps a codec name (as accepted on --algorithm) to an Algorithm.
func Parse(s string) (Algorithm, error) {
	for _, a := range List() {
		if a.String() == s {
			return a, nil
		}
	}
	return None, liberr.CodeStore.Error(fmt.Errorf("unknown compression algorithm %q", s))
}

// NewWriter wraps w with a's compressor. Closing the returned WriteCloser
// flushes and finalizes the codec's trailer; it does not close w.
func (a Algorithm) NewWriter(w io.Writer) (io.WriteCloser, error) {
	switch a {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Bzip2:
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	case LZ4:
		return lz4.NewWriter(w), nil
	case XZ:
		return xz.NewWriter(w)
	default:
		return nil, liberr.CodeStore.Error(fmt.Errorf("unsupported compression algorithm %d", a))
	}
}

// NewReader wraps r with a's decompressor.
func (a Algorithm) NewReader(r io.Reader) (io.Reader, error) {
	switch a {
	case None:
		return r, nil
	case Gzip:
		return gzip.NewReader(r)
	case Bzip2:
		return bzip2.NewReader(r, nil)
	case LZ4:
		return lz4.NewReader(r), nil
	case XZ:
		return xz.NewReader(r)
	default:
		return nil, liberr.CodeStore.Error(fmt.Errorf("unsupported compression algorithm %d", a))
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
