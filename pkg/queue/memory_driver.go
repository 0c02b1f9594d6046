package queue

import (
	"context"
	"errors"
)

// ErrQueueFull is returned by MemoryDriver.Push when the buffer is at
// capacity. The Redis driver never returns it.
var ErrQueueFull = errors.New("queue: memory driver full")

// MemoryDriver is the channel-backed driver the process falls back to when
// Redis is not configured. Jobs are lost on restart, which is acceptable for
// development and for tests.
type MemoryDriver struct {
	ch chan []byte
}

const memoryDriverBuffer = 1024

// NewMemoryDriver returns a driver buffering up to 1024 pending jobs.
func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{ch: make(chan []byte, memoryDriverBuffer)}
}

// Push enqueues payload without blocking. A full buffer is a dispatch error,
// not a stall on the caller's request path.
func (d *MemoryDriver) Push(payload []byte) error {
	select {
	case d.ch <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pop blocks until a job arrives or ctx is cancelled.
func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.ch:
		return payload, nil
	}
}
