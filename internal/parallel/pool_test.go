// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestExecuteAllRunsEverything(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	var count atomic.Int64
	jobs := make([]func(), 100)
	for i := range jobs {
		jobs[i] = func() { count.Add(1) }
	}

	p.ExecuteAll(jobs)
	if got := count.Load(); got != 100 {
		t.Errorf("ran %d jobs, want 100", got)
	}
}

func TestExecuteAllIsABarrier(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	var done atomic.Bool
	p.ExecuteAll([]func(){
		func() {
			time.Sleep(20 * time.Millisecond)
			done.Store(true)
		},
	})
	if !done.Load() {
		t.Error("ExecuteAll returned before the job finished")
	}
}

func TestExecuteAllEmpty(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()
	p.ExecuteAll(nil)
}

func TestUnevenLoadIsBalanced(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	// One slow job among many fast ones; stealing should keep the total
	// well under serial time.
	var count atomic.Int64
	jobs := make([]func(), 32)
	jobs[0] = func() {
		time.Sleep(30 * time.Millisecond)
		count.Add(1)
	}
	for i := 1; i < len(jobs); i++ {
		jobs[i] = func() {
			time.Sleep(time.Millisecond)
			count.Add(1)
		}
	}

	p.ExecuteAll(jobs)
	if got := count.Load(); got != 32 {
		t.Errorf("ran %d jobs, want 32", got)
	}
}

func TestSubmit(t *testing.T) {
	p := NewWorkerPool(2)

	var count atomic.Int64
	for i := 0; i < 10; i++ {
		p.Submit(func() { count.Add(1) })
	}
	p.Submit(nil)

	// Close drains queued work before stopping.
	p.Close()
	if got := count.Load(); got != 10 {
		t.Errorf("ran %d submitted jobs, want 10", got)
	}
}

func TestCloseIdempotent(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	p.Close()

	if p.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
	// Work after Close is a silent no-op.
	p.ExecuteAll([]func(){func() { t.Error("job ran on closed pool") }})
}

func TestDefaultWorkerCount(t *testing.T) {
	p := NewWorkerPool(0)
	defer p.Close()
	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
}
