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
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	liberr "github.com/nabbar/packrs/errors"
)

// Store wraps the GORM handle onto an archive's SQLite file.
type Store struct {
	db *gorm.DB
}

// Open creates path if it does not exist and declares the three archive
// tables. path is a real filesystem path, never ":memory:" — packrs always
// builds directly against the destination file. Open is for the writer
// path (Packer); readers that must not mutate the target file use
// OpenReadOnly instead.
func Open(path string) (*Store, error) {
	s, err := open(path)
	if err != nil {
		return nil, err
	}
	if err := s.createSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenReadOnly opens path without declaring or altering its schema. It is
// for every path that only probes or reads an archive (IsArchive, the
// unpacker, the "list" command): spec.md §4.1 frames identification as a
// read-only probe, and a foreign SQLite file handed to "list" or "extract"
// must not come away with a freshly created item/content/itemcontent
// schema grafted onto it.
func OpenReadOnly(path string) (*Store, error) {
	return open(path)
}

func open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, liberr.CodeStore.Error(err)
	}
	return &Store{db: db}, nil
}

// createSchema declares item/content/itemcontent if they don't already
// exist. Declared with raw DDL rather than GORM's AutoMigrate so the schema
// matches the format exactly, independent of struct-tag drift.
func (s *Store) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS item (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			parent INTEGER NOT NULL,
			kind   INTEGER NOT NULL,
			name   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_item_parent ON item(parent)`,
		`CREATE TABLE IF NOT EXISTS content (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			value BLOB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS itemcontent (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			item       INTEGER NOT NULL,
			itempos    INTEGER NOT NULL,
			content    INTEGER NOT NULL,
			contentpos INTEGER NOT NULL,
			size       INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_itemcontent_item ON itemcontent(item)`,
		`CREATE INDEX IF NOT EXISTS idx_itemcontent_content ON itemcontent(content, contentpos)`,
	}
	for _, stmt := range stmts {
		if err := s.db.Exec(stmt).Error; err != nil {
			return liberr.CodeStore.Error(err)
		}
	}
	return nil
}

// DB exposes the underlying GORM handle to packages in this module that
// need finer control than Store's own methods (pack, unpack).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return liberr.CodeStore.Error(err)
	}
	if err := sqlDB.Close(); err != nil {
		return liberr.CodeStore.Error(err)
	}
	return nil
}

// AddDirectory inserts one item row with kind=DIRECTORY and returns its id.
func (s *Store) AddDirectory(name string, parent uint64) (uint64, error) {
	return s.addItem(name, parent, KindDirectory)
}

// AddFileItem inserts one item row with kind=FILE and returns its id. The
// caller is responsible for emitting the corresponding itemcontent slices.
func (s *Store) AddFileItem(name string, parent uint64) (uint64, error) {
	return s.addItem(name, parent, KindFile)
}

// AddSymlinkItem inserts one item row with kind=SYMLINK and returns its id.
func (s *Store) AddSymlinkItem(name string, parent uint64) (uint64, error) {
	return s.addItem(name, parent, KindSymlink)
}

func (s *Store) addItem(name string, parent uint64, kind Kind) (uint64, error) {
	it := Item{Parent: parent, Kind: kind, Name: name}
	if err := s.db.Create(&it).Error; err != nil {
		return 0, liberr.CodeStore.Error(err)
	}
	return it.ID, nil
}

// WriteContent reserves a blob of len(compressed) bytes via zeroblob, then
// overwrites it, approximating the zero-blob-then-overwrite idiom: GORM's
// sqlite driver does not expose SQLite's incremental blob I/O handle, so the
// overwrite is a full-row UPDATE rather than a seek-and-write on an open
// blob handle (see SPEC_FULL.md §3.1).
func (s *Store) WriteContent(compressed []byte) (uint64, error) {
	var id uint64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`INSERT INTO content (value) VALUES (zeroblob(?))`, len(compressed))
		if res.Error != nil {
			return liberr.CodeStore.Error(res.Error)
		}

		row := tx.Raw(`SELECT last_insert_rowid()`).Row()
		if err := row.Scan(&id); err != nil {
			return liberr.CodeStore.Error(err)
		}

		res = tx.Exec(`UPDATE content SET value = ? WHERE id = ?`, compressed, id)
		if res.Error != nil {
			return liberr.CodeStore.Error(res.Error)
		}
		if res.RowsAffected != 1 {
			return liberr.CodeIncompleteBlobWrite.Error(
				fmt.Errorf("content id %d: %d rows affected, want 1", id, res.RowsAffected))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AddItemContent inserts one itemcontent row.
func (s *Store) AddItemContent(item, content, itemPos, contentPos, size uint64) error {
	ic := ItemContent{Item: item, Content: content, ItemPos: itemPos, ContentPos: contentPos, Size: size}
	if err := s.db.Create(&ic).Error; err != nil {
		return liberr.CodeStore.Error(err)
	}
	return nil
}
