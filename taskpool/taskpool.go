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

// Package taskpool bounds how many bundle-flush jobs run concurrently. It
// trades the teacher's mutex-and-condvar job counter for a weighted
// semaphore plus a wait group: Submit acquires a slot and blocks the caller
// when the pool is saturated, WaitUntilDone blocks until every submitted job
// has returned.
package taskpool

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	liberr "github.com/nabbar/packrs/errors"
)

// Pool runs up to the size given to New jobs concurrently and tracks their
// completion.
type Pool struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// New returns a Pool that runs at most size jobs at once. size must be >= 1.
func New(size int64) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(size)}
}

// Submit blocks until a slot is free, then runs job in its own goroutine.
// Submit returns once job has started, not once it has finished; use
// WaitUntilDone to block for completion. Submit after Shutdown returns
// CodePoolShutdown without running job.
func (p *Pool) Submit(ctx context.Context, job func()) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return liberr.CodePoolShutdown.Error()
	}
	p.mu.Unlock()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return liberr.CodeIO.Error(err)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		job()
	}()

	return nil
}

// WaitUntilDone blocks until every job submitted so far has returned.
func (p *Pool) WaitUntilDone() {
	p.wg.Wait()
}

// Shutdown marks the pool closed; subsequent Submit calls fail fast instead
// of starting new work. It does not cancel jobs already running.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}
