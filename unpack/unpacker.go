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

// Package unpack restores a packrs archive's tree onto disk: directories
// first, then a single ordered pass over every bundle that decompresses
// each one exactly once and scatters its bytes into the files and symlinks
// that share it.
package unpack

import (
	"github.com/nabbar/packrs/logger"
	"github.com/nabbar/packrs/store"
)

// Unpacker restores an archive's tree under a destination directory.
type Unpacker struct {
	db   *store.Store
	dest string
	log  logger.Logger
}

// Option configures an Unpacker at construction time.
type Option func(*Unpacker)

// WithLogger attaches a logger; when omitted, a stderr logger at info level
// is used.
func WithLogger(l logger.Logger) Option {
	return func(u *Unpacker) { u.log = l }
}

// New opens the archive at path for extraction under dest. Extraction never
// mutates the archive (spec.md §3 "Lifecycle"), so the store is opened
// read-only: no schema is declared or altered on path.
func New(path, dest string, opts ...Option) (*Unpacker, error) {
	db, err := store.OpenReadOnly(path)
	if err != nil {
		return nil, err
	}

	u := &Unpacker{db: db, dest: dest, log: logger.NewStderr(logger.LevelInfo)}
	for _, o := range opts {
		o(u)
	}

	u.log.Info("archive opened for extraction", logger.Fields{"path": path, "dest": dest})
	return u, nil
}

// Close releases the underlying store handle.
func (u *Unpacker) Close() error {
	return u.db.Close()
}

// ExtractAll restores every item in the archive under u.dest and returns
// the number of non-directory items extracted.
func (u *Unpacker) ExtractAll() (int, error) {
	if err := u.materializeDirectories(); err != nil {
		u.log.Error("directory materialization failed", err, logger.Fields{})
		return 0, err
	}

	idx, err := newPathIndex(u.db)
	if err != nil {
		u.log.Error("path index build failed", err, logger.Fields{})
		return 0, err
	}
	defer idx.drop()

	count, err := u.scatter(idx)
	if err != nil {
		u.log.Error("extraction failed", err, logger.Fields{"dest": u.dest})
		return count, err
	}

	u.log.Info("extraction finished", logger.Fields{"dest": u.dest, "items": count})
	return count, nil
}
