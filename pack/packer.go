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

// Package pack streams a file tree into a packrs archive: fixed-capacity
// compressed bundles, split across files that overflow BUNDLE_CAPACITY,
// flushed either synchronously or through a bounded task pool.
package pack

import (
	"context"
	"sync"

	"github.com/nabbar/packrs/compress"
	"github.com/nabbar/packrs/logger"
	"github.com/nabbar/packrs/store"
	"github.com/nabbar/packrs/taskpool"
)

// Packer is the core archive builder. The zero value is not usable; use New.
type Packer struct {
	db   *store.Store
	algo compress.Algorithm
	pool *taskpool.Pool
	log  logger.Logger

	// mu serializes store writes made from pooled flush goroutines; the
	// pending/currentPos fields below are only ever touched by the
	// caller's single goroutine and need no lock of their own.
	mu sync.Mutex

	currentPos uint64
	pending    []slice

	errOnce  sync.Once
	firstErr error
}

// Option configures a Packer at construction time.
type Option func(*Packer)

// WithAlgorithm selects the bundle compression codec. Default: compress.Default.
func WithAlgorithm(a compress.Algorithm) Option {
	return func(p *Packer) { p.algo = a }
}

// WithPool overlaps bundle compression with continued tree walking by
// offloading flushes to a bounded pool of size workers. size <= 1 keeps
// flushing synchronous.
func WithPool(size int64) Option {
	return func(p *Packer) {
		if size > 1 {
			p.pool = taskpool.New(size)
		}
	}
}

// WithLogger attaches a logger; when omitted, a stderr logger at info level
// is used.
func WithLogger(l logger.Logger) Option {
	return func(p *Packer) { p.log = l }
}

// New opens (creating if needed) the archive at path and returns a Packer
// ready to receive add_* calls.
func New(path string, opts ...Option) (*Packer, error) {
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}

	p := &Packer{db: db, algo: compress.Default, log: logger.NewStderr(logger.LevelInfo)}
	for _, o := range opts {
		o(p)
	}

	p.log.Info("archive opened", logger.Fields{"path": path, "algorithm": p.algo.String()})
	return p, nil
}

// AddDirectory inserts a DIRECTORY item and returns its id. No bundle state
// is touched.
func (p *Packer) AddDirectory(name string, parent uint64) (uint64, error) {
	id, err := p.db.AddDirectory(name, parent)
	if err != nil {
		p.log.Error("add directory failed", err, logger.Fields{"name": name, "parent": parent})
		return 0, err
	}
	p.log.Debug("directory added", logger.Fields{"id": id, "name": name, "parent": parent})
	return id, nil
}

// Finish flushes any pending slices, waits for outstanding asynchronous
// flushes, and closes the underlying store. It returns the first error
// encountered by any flush, synchronous or pooled.
func (p *Packer) Finish(ctx context.Context) error {
	if err := p.flush(ctx); err != nil {
		p.recordErr(err)
	}

	if p.pool != nil {
		p.log.Debug("waiting for pooled bundle flushes", logger.Fields{})
		p.pool.WaitUntilDone()
		p.pool.Shutdown()
	}

	if p.firstErr != nil {
		p.log.Error("archive build failed", p.firstErr, logger.Fields{})
		_ = p.db.Close()
		return p.firstErr
	}

	p.log.Info("archive build finished", logger.Fields{})
	return p.db.Close()
}

func (p *Packer) recordErr(err error) {
	if err == nil {
		return
	}
	p.errOnce.Do(func() { p.firstErr = err })
}

// Err returns the first flush error recorded so far, without blocking on
// pending asynchronous work.
func (p *Packer) Err() error {
	return p.firstErr
}
