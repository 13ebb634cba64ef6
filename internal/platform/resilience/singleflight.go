package resilience

import (
	"context"
	"sync"
)

// Flight collapses concurrent calls that share a key into one execution.
// Callers that join an execution stop waiting when their own context ends;
// the execution itself keeps running for the caller that started it.
type Flight[T any] struct {
	mu      sync.Mutex
	pending map[string]*flightCall[T]
}

type flightCall[T any] struct {
	done    chan struct{}
	val     T
	err     error
	waiters int
}

// Do runs fn unless a call for key is already running, in which case it
// waits for that call's result. joined reports whether the result was shared.
func (f *Flight[T]) Do(ctx context.Context, key string, fn func() (T, error)) (val T, joined bool, err error) {
	f.mu.Lock()
	if f.pending == nil {
		f.pending = make(map[string]*flightCall[T])
	}

	if c, ok := f.pending[key]; ok {
		c.waiters++
		f.mu.Unlock()
		select {
		case <-c.done:
			return c.val, true, c.err
		case <-ctx.Done():
			var zero T
			return zero, true, ctx.Err()
		}
	}

	c := &flightCall[T]{done: make(chan struct{})}
	f.pending[key] = c
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.pending, key)
		f.mu.Unlock()
		close(c.done)
	}()

	c.val, c.err = fn()
	return c.val, false, c.err
}

// InFlight reports how many keys are currently executing.
func (f *Flight[T]) InFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}
