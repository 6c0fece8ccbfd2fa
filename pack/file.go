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
	"context"
	"os"

	"github.com/nabbar/packrs/logger"
	"github.com/nabbar/packrs/store"
	"github.com/nabbar/packrs/symlink"
)

// AddFile inserts a FILE item for the file at diskPath (recorded in the tree
// under name/parent) and emits one or more pending slices, splitting and
// flushing whenever the current bundle would overflow BUNDLE_CAPACITY.
func (p *Packer) AddFile(ctx context.Context, diskPath, name string, parent uint64) (uint64, error) {
	fi, err := os.Stat(diskPath)
	var fileLen uint64
	if err == nil {
		fileLen = uint64(fi.Size())
	}

	id, err := p.db.AddFileItem(name, parent)
	if err != nil {
		p.log.Error("add file failed", err, logger.Fields{"path": diskPath, "name": name})
		return 0, err
	}
	p.log.Debug("file added", logger.Fields{"id": id, "path": diskPath, "size": fileLen})

	if fileLen == 0 {
		p.pending = append(p.pending, slice{
			path: diskPath, kind: store.KindFile, itemID: id,
			itemPos: 0, contentPos: p.currentPos, size: 0,
		})
		return id, nil
	}

	var (
		remaining = fileLen
		itemPos   uint64
	)
	for remaining > 0 {
		if p.currentPos+remaining > store.BundleCapacity {
			head := store.BundleCapacity - p.currentPos
			p.pending = append(p.pending, slice{
				path: diskPath, kind: store.KindFile, itemID: id,
				itemPos: itemPos, contentPos: p.currentPos, size: head,
			})
			p.log.Debug("file split across bundle boundary", logger.Fields{
				"id": id, "path": diskPath, "itempos": itemPos, "head_size": head,
			})
			if err := p.flush(ctx); err != nil {
				return id, err
			}
			remaining -= head
			itemPos += head
			continue
		}

		p.pending = append(p.pending, slice{
			path: diskPath, kind: store.KindFile, itemID: id,
			itemPos: itemPos, contentPos: p.currentPos, size: remaining,
		})
		p.currentPos += remaining
		remaining = 0
	}

	return id, nil
}

// AddSymlink inserts a SYMLINK item and appends a single slice holding the
// raw link target bytes. A symlink is never split across bundles: if it
// would overflow the current one, that bundle is flushed first.
func (p *Packer) AddSymlink(ctx context.Context, diskPath, name string, parent uint64) (uint64, error) {
	target, err := symlink.ReadTarget(diskPath)
	if err != nil {
		return 0, err
	}

	id, err := p.db.AddSymlinkItem(name, parent)
	if err != nil {
		p.log.Error("add symlink failed", err, logger.Fields{"path": diskPath, "name": name})
		return 0, err
	}
	p.log.Debug("symlink added", logger.Fields{"id": id, "path": diskPath, "target": target})

	size := uint64(len(target))
	if p.currentPos+size > store.BundleCapacity {
		if err := p.flush(ctx); err != nil {
			return id, err
		}
	}

	p.pending = append(p.pending, slice{
		path: diskPath, kind: store.KindSymlink, itemID: id,
		itemPos: 0, contentPos: p.currentPos, size: size,
	})
	p.currentPos += size

	return id, nil
}
