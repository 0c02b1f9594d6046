// Package workerpool bounds the goroutines spent on fire-and-forget work.
// The notification fan-out runs on a Pool so a burst of store changes cannot
// spawn an unbounded number of webhook and email goroutines.
//
//	pool := workerpool.New(16)
//	defer pool.Shutdown()
//
//	if err := pool.Submit(sendWebhook); errors.Is(err, workerpool.ErrPoolFull) {
//	    // shed load: drop, retry later, or push to the queue instead
//	}
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull means the task buffer is at capacity. Submit never blocks, so
// this is how backpressure reaches the caller.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed means Shutdown has already been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	tasks chan func()
	quit  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// New starts size workers. The task buffer holds twice that many pending
// tasks, absorbing short bursts before Submit starts rejecting.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		tasks: make(chan func(), size*2),
		quit:  make(chan struct{}),
	}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking. Returns ErrPoolFull when the buffer
// is at capacity, ErrPoolClosed after Shutdown.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.quit:
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until the task is enqueued or the pool shuts down.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.quit:
		return ErrPoolClosed
	case p.tasks <- task:
		return nil
	}
}

// Shutdown rejects further tasks, drains the buffer, and waits for in-flight
// work. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.quit)
		close(p.tasks)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		runRecovered(task)
	}
}

// runRecovered keeps a panicking task from taking its worker down with it.
func runRecovered(task func()) {
	defer func() { _ = recover() }()
	task()
}
