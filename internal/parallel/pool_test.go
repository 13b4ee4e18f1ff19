package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	jobs := make([]func(), 100)
	for i := range jobs {
		jobs[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(jobs)

	if got := counter.Load(); got != 100 {
		t.Errorf("counter = %d, want 100", got)
	}
}

func TestWorkerPool_ExecuteAllUnevenWork(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var counter atomic.Int64
	jobs := make([]func(), 10)
	for i := range jobs {
		jobs[i] = func() {
			if i == 0 {
				time.Sleep(20 * time.Millisecond)
			}
			counter.Add(1)
		}
	}
	pool.ExecuteAll(jobs)

	if got := counter.Load(); got != 10 {
		t.Errorf("counter = %d, want 10", got)
	}
}

func TestWorkerPool_ExecuteAllEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()
	pool.ExecuteAll(nil) // must not block
}

func TestWorkerPool_ExecuteAllAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var counter atomic.Int64
	pool.ExecuteAll([]func(){
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	})
	if got := counter.Load(); got != 2 {
		t.Errorf("closed pool ran %d jobs, want 2 inline", got)
	}
}

func TestWorkerPool_CloseDuringExecuteAll(t *testing.T) {
	for range 200 {
		pool := NewWorkerPool(2)
		jobs := make([]func(), 64)
		var counter atomic.Int64
		for i := range jobs {
			jobs[i] = func() { counter.Add(1) }
		}

		finished := make(chan struct{})
		go func() {
			pool.ExecuteAll(jobs)
			close(finished)
		}()
		pool.Close()

		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			t.Fatal("ExecuteAll blocked after a concurrent Close")
		}
		if got := counter.Load(); got != int64(len(jobs)) {
			t.Fatalf("ran %d jobs, want %d", got, len(jobs))
		}
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

func TestWorkerPool_NilJob(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var counter atomic.Int64
	pool.ExecuteAll([]func(){nil, func() { counter.Add(1) }})
	if got := counter.Load(); got != 1 {
		t.Errorf("counter = %d, want 1", got)
	}
}
