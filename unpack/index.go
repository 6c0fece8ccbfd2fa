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
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	liberr "github.com/nabbar/packrs/errors"
	"github.com/nabbar/packrs/store"
)

// pathIndex is the transient table keyed by item id, holding (kind, path)
// for every non-directory item. Its name is suffixed with a fresh uuid so
// concurrent or previously-aborted extractions never collide over it.
type pathIndex struct {
	db   *gorm.DB
	name string
}

// newPathIndex creates and populates the transient index, first dropping
// any residual copy a prior aborted run might have left of the same name
// (a no-op in practice, since the name is fresh, but cheap and matches the
// defensive drop-before-create the archive format requires).
func newPathIndex(s *store.Store) (*pathIndex, error) {
	name := "packrs_pathidx_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	db := s.DB()

	idx := &pathIndex{db: db, name: name}

	if err := db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, idx.name)).Error; err != nil {
		return nil, liberr.CodeStore.Error(err)
	}
	if err := db.Exec(fmt.Sprintf(`CREATE TEMP TABLE %s (id INTEGER PRIMARY KEY, kind INTEGER, path TEXT)`, idx.name)).Error; err != nil {
		return nil, liberr.CodeStore.Error(err)
	}

	populate := recursivePathsCTE + fmt.Sprintf(`INSERT INTO %s (id, kind, path) SELECT id, kind, path FROM tree WHERE kind != ?`, idx.name)
	if err := db.Exec(populate, store.KindDirectory).Error; err != nil {
		return nil, liberr.CodeStore.Error(err)
	}

	return idx, nil
}

func (idx *pathIndex) drop() error {
	if err := idx.db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, idx.name)).Error; err != nil {
		return liberr.CodeStore.Error(err)
	}
	return nil
}
