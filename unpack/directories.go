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
	"os"
	"path/filepath"

	liberr "github.com/nabbar/packrs/errors"
	"github.com/nabbar/packrs/logger"
	"github.com/nabbar/packrs/pathutil"
	"github.com/nabbar/packrs/store"
)

// pathRow is one row of the recursive full-path reconstruction query:
// an item id, its kind, and its full slash-joined path from the tree root.
type pathRow struct {
	ID   uint64
	Kind store.Kind
	Path string
}

// recursivePathsCTE reconstructs every item's full path by walking parent
// links from the 0-rooted tree, the same shape as the original archiver's
// ordered listing query, generalized here to feed both directory
// materialization and the scatter plan's path index. Callers append their
// own terminal SELECT or INSERT...SELECT against the "tree" CTE.
const recursivePathsCTE = `
WITH RECURSIVE tree(id, kind, path) AS (
	SELECT id, kind, name FROM item WHERE parent = 0
	UNION ALL
	SELECT item.id, item.kind, tree.path || '/' || item.name
	FROM item JOIN tree ON item.parent = tree.id
)
`

// materializeDirectories creates every DIRECTORY item's sanitized path
// under the destination, ordered by id so a parent (assigned a lower id at
// build time) is always created before its children.
func (u *Unpacker) materializeDirectories() error {
	var rows []pathRow
	sql := recursivePathsCTE + `SELECT id, kind, path FROM tree WHERE kind = ? ORDER BY id`
	if err := u.db.DB().Raw(sql, store.KindDirectory).Scan(&rows).Error; err != nil {
		return liberr.CodeStore.Error(err)
	}

	for _, r := range rows {
		dir := filepath.Join(u.dest, pathutil.Sanitize(r.Path))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			u.log.Error("directory create failed", err, logger.Fields{"path": dir})
			return liberr.CodeIO.Error(err)
		}
	}

	u.log.Debug("directories materialized", logger.Fields{"count": len(rows)})
	return nil
}
