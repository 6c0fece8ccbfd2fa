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

package unpack

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nabbar/packrs/compress"
	liberr "github.com/nabbar/packrs/errors"
	"github.com/nabbar/packrs/logger"
	"github.com/nabbar/packrs/pathutil"
	"github.com/nabbar/packrs/store"
	"github.com/nabbar/packrs/symlink"
)

// scatterRow is one row of the scatter plan: an itemcontent slice joined
// with the path index, naming where its bytes came from and go to. Content
// is nullable: a FILE item may have zero itemcontent rows when the archive
// represents an empty file that way instead of a single size=0 row.
type scatterRow struct {
	Content    sql.NullInt64
	ContentPos sql.NullInt64
	ItemPos    sql.NullInt64
	Size       sql.NullInt64
	Kind       store.Kind
	Path       string
}

func (r scatterRow) hasContent() bool { return r.Content.Valid }

// scatter streams the ordered scatter plan, groups consecutive rows by
// content id into batches, and hands each batch to the per-bundle
// processor as soon as the content id changes. It returns the count of
// distinct non-directory items it restored.
func (u *Unpacker) scatter(idx *pathIndex) (int, error) {
	sql := fmt.Sprintf(
		`SELECT itemcontent.content AS content, itemcontent.contentpos AS contentpos,
		        itemcontent.itempos AS itempos, itemcontent.size AS size,
		        %s.kind AS kind, %s.path AS path
		 FROM %s
		 LEFT JOIN itemcontent ON %s.id = itemcontent.item
		 ORDER BY itemcontent.content, itemcontent.contentpos`,
		idx.name, idx.name, idx.name, idx.name,
	)

	rows, err := idx.db.Raw(sql).Rows()
	if err != nil {
		return 0, liberr.CodeStore.Error(err)
	}
	defer rows.Close()

	extracted := map[string]bool{}
	var batch []scatterRow
	var curContent int64
	haveCur := false

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		touched, err := u.processBundle(batch)
		for path := range touched {
			extracted[path] = true
		}
		batch = nil
		return err
	}

	for rows.Next() {
		var r scatterRow
		if err := rows.Scan(&r.Content, &r.ContentPos, &r.ItemPos, &r.Size, &r.Kind, &r.Path); err != nil {
			return 0, liberr.CodeStore.Error(err)
		}

		if !r.hasContent() {
			// A FILE item with no itemcontent row at all: the empty-file
			// representation the packer doesn't emit but readers must
			// still accept.
			if err := flush(); err != nil {
				return 0, err
			}
			if err := createEmpty(filepath.Join(u.dest, pathutil.Sanitize(r.Path)), r.Kind); err != nil {
				return 0, err
			}
			extracted[r.Path] = true
			continue
		}

		if haveCur && r.Content.Int64 != curContent {
			if err := flush(); err != nil {
				return 0, err
			}
		}
		curContent = r.Content.Int64
		haveCur = true
		batch = append(batch, r)
	}
	if err := rows.Err(); err != nil {
		return 0, liberr.CodeStore.Error(err)
	}
	if err := flush(); err != nil {
		return 0, err
	}

	return len(extracted), nil
}

// createEmpty handles a non-directory item with no itemcontent row at all:
// in practice only an empty FILE (a symlink always carries at least its
// target bytes as one slice).
func createEmpty(outPath string, kind store.Kind) error {
	if kind != store.KindFile {
		return nil
	}
	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return liberr.CodeIO.Error(err)
	}
	return f.Close()
}

// processBundle implements the per-bundle processor: decompress batch's
// shared content blob exactly once, then scatter each slice into its
// destination file or symlink. It returns the set of output paths it
// touched, so the caller can count distinct extracted items.
func (u *Unpacker) processBundle(batch []scatterRow) (map[string]bool, error) {
	touched := map[string]bool{}
	if len(batch) == 0 {
		return touched, nil
	}

	contentID := batch[0].Content.Int64

	var c store.Content
	if err := u.db.DB().First(&c, contentID).Error; err != nil {
		u.log.Error("bundle read failed", err, logger.Fields{"content": contentID})
		return nil, liberr.CodeStore.Error(err)
	}

	algo := compress.Detect(c.Value)
	r, err := algo.NewReader(bytes.NewReader(c.Value))
	if err != nil {
		u.log.Error("bundle decompressor setup failed", err, logger.Fields{"content": contentID, "algorithm": algo.String()})
		return nil, err
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		u.log.Error("bundle decompress failed", err, logger.Fields{"content": contentID})
		return nil, liberr.CodeIO.Error(err)
	}

	u.log.Debug("bundle decompressed", logger.Fields{
		"content": contentID, "slices": len(batch), "decompressed_bytes": len(buf),
	})

	for _, row := range batch {
		outPath := filepath.Join(u.dest, pathutil.Sanitize(row.Path))
		contentPos := uint64(row.ContentPos.Int64)
		size := uint64(row.Size.Int64)
		itemPos := uint64(row.ItemPos.Int64)

		switch row.Kind {
		case store.KindSymlink:
			target := string(buf[contentPos : contentPos+size])
			if err := symlink.Create(target, outPath); err != nil {
				u.log.Error("symlink create failed", err, logger.Fields{"path": outPath})
				return nil, err
			}
			u.log.Debug("symlink restored", logger.Fields{"path": outPath})
			touched[outPath] = true
		default:
			if err := scatterFile(outPath, itemPos, contentPos, size, buf); err != nil {
				u.log.Error("file scatter failed", err, logger.Fields{"path": outPath, "itempos": itemPos, "size": size})
				return nil, err
			}
			u.log.Debug("file slice restored", logger.Fields{"path": outPath, "itempos": itemPos, "size": size})
			touched[outPath] = true
		}
	}

	return touched, nil
}

// scatterFile writes one slice of a FILE item at its itempos offset,
// extending the file with zeros first if a later-offset slice of the same
// file was scattered before an earlier one.
func scatterFile(outPath string, itemPos, contentPos, size uint64, buf []byte) error {
	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return liberr.CodeIO.Error(err)
	}
	defer f.Close()

	if size == 0 {
		return nil
	}

	fi, err := f.Stat()
	if err != nil {
		return liberr.CodeIO.Error(err)
	}
	if uint64(fi.Size()) < itemPos {
		if err := f.Truncate(int64(itemPos)); err != nil {
			return liberr.CodeIO.Error(err)
		}
	}

	if _, err := f.Seek(int64(itemPos), io.SeekStart); err != nil {
		return liberr.CodeIO.Error(err)
	}
	if _, err := f.Write(buf[contentPos : contentPos+size]); err != nil {
		return liberr.CodeIO.Error(err)
	}
	return nil
}
