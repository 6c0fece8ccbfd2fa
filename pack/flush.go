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

package pack

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/nabbar/packrs/logger"
	"github.com/nabbar/packrs/store"
	"github.com/nabbar/packrs/symlink"
)

// flush hands the current pending batch to the bundle flusher, either
// inline or, when a pool was configured, on a pool goroutine so the caller
// can keep walking the tree while compression runs. It always resets
// currentPos/pending before returning so the caller can start a fresh
// bundle immediately.
func (p *Packer) flush(ctx context.Context) error {
	if len(p.pending) == 0 {
		return nil
	}

	batch := p.pending
	p.pending = nil
	p.currentPos = 0

	p.log.Debug("bundle flush queued", logger.Fields{"slices": len(batch)})

	if p.pool == nil {
		return p.doFlush(batch)
	}

	return p.pool.Submit(ctx, func() {
		if err := p.doFlush(batch); err != nil {
			p.recordErr(err)
		}
	})
}

// doFlush implements the bundle flusher: stream every slice's bytes through
// the configured compressor, reserve and overwrite a content blob, then
// record one itemcontent row per slice.
func (p *Packer) doFlush(batch []slice) error {
	var buf bytes.Buffer
	w, err := p.algo.NewWriter(&buf)
	if err != nil {
		p.log.Error("bundle compressor setup failed", err, logger.Fields{"algorithm": p.algo.String()})
		return err
	}

	for _, s := range batch {
		if err := writeSliceBytes(w, s); err != nil {
			p.log.Error("bundle flush failed", err, logger.Fields{"path": s.path})
			return err
		}
	}
	if err := w.Close(); err != nil {
		p.log.Error("bundle compressor close failed", err, logger.Fields{})
		return err
	}
	compressed := buf.Bytes()

	p.mu.Lock()
	defer p.mu.Unlock()

	contentID, err := p.db.WriteContent(compressed)
	if err != nil {
		p.log.Error("bundle write failed", err, logger.Fields{})
		return err
	}

	for _, s := range batch {
		if err := p.db.AddItemContent(s.itemID, contentID, s.itemPos, s.contentPos, s.size); err != nil {
			p.log.Error("itemcontent row failed", err, logger.Fields{"item": s.itemID, "content": contentID})
			return err
		}
	}

	p.log.Info("bundle flushed", logger.Fields{
		"content": contentID, "slices": len(batch), "compressed_bytes": len(compressed),
	})
	return nil
}

func writeSliceBytes(w io.Writer, s slice) error {
	switch s.kind {
	case store.KindSymlink:
		target, err := symlink.ReadTarget(s.path)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, target)
		return err
	default:
		f, err := os.Open(s.path)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := f.Seek(int64(s.itemPos), io.SeekStart); err != nil {
			return err
		}
		_, err = io.CopyN(w, f, int64(s.size))
		return err
	}
}
