// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package parallel provides the worker pool that fans asset rendering out
// across CPUs. Assets in one dependency level are independent, so a level
// is submitted as a batch and ExecuteAll is the inter-level barrier.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs jobs on a fixed set of goroutines. Each worker owns a
// queue and steals from the others when idle, which keeps cores busy when
// one asset renders much slower than its level-mates.
//
// Safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	stop    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given worker count. A count of 0
// or below selects GOMAXPROCS. Workers begin waiting immediately.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		stop:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	mine := p.queues[id]

	for {
		select {
		case <-p.stop:
			p.drain(mine)
			return
		case job := <-mine:
			if job != nil {
				job()
			}
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			// Nothing anywhere; block on the own queue.
			select {
			case <-p.stop:
				p.drain(mine)
				return
			case job := <-mine:
				if job != nil {
					job()
				}
			}
		}
	}
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			if job != nil {
				job()
			}
		default:
			return
		}
	}
}

// steal takes one job from any other worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := 0; i < p.workers; i++ {
		if i == myID {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs all jobs on the pool and blocks until every one has
// finished. A no-op on a closed pool or an empty batch.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 || !p.running.Load() {
		return
	}

	var done sync.WaitGroup
	done.Add(len(jobs))

	for i, fn := range jobs {
		job := fn
		wrapped := func() {
			defer done.Done()
			job()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.stop:
			done.Done()
		}
	}

	done.Wait()
}

// Submit queues one job without waiting, picking the worker with the
// shortest queue. A no-op on a closed pool.
func (p *WorkerPool) Submit(fn func()) {
	if fn == nil || !p.running.Load() {
		return
	}

	minIdx := 0
	for i := 1; i < p.workers; i++ {
		if len(p.queues[i]) < len(p.queues[minIdx]) {
			minIdx = i
		}
	}

	select {
	case p.queues[minIdx] <- fn:
	case <-p.stop:
	}
}

// Close stops accepting work, finishes what is queued, and waits for all
// workers to exit. Safe to call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.stop)
	p.wg.Wait()
}

// Workers returns the worker count.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
