package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker opens after failureThreshold consecutive failures. Once
// openTimeout has passed it admits up to halfOpenMaxReq probes; they all
// have to succeed to close it again and any failure reopens it.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int

	state     CircuitState
	failures  int
	openedAt  time.Time
	probes    int
	succeeded int

	onChange func(from, to CircuitState)
	now      func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: max(failureThreshold, 1),
		openTimeout:      cmpDuration(openTimeout, 15*time.Second),
		halfOpenMaxReq:   max(halfOpenMaxReq, 1),
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

func cmpDuration(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}

// OnStateChange registers fn to run after every transition. fn is called
// without the breaker lock held.
func (b *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Allow reserves a slot for one call or returns ErrCircuitOpen.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	var notify func()
	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		notify = b.moveTo(CircuitStateHalfOpen)
	}

	var err error
	switch b.state {
	case CircuitStateOpen:
		err = ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.probes >= b.halfOpenMaxReq {
			err = ErrCircuitOpen
		} else {
			b.probes++
		}
	}
	b.mu.Unlock()

	runNotify(notify)
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	var notify func()
	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.releaseProbe()
		b.succeeded++
		if b.succeeded >= b.halfOpenMaxReq && b.probes == 0 {
			notify = b.moveTo(CircuitStateClosed)
		}
	}
	b.mu.Unlock()

	runNotify(notify)
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	var notify func()
	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.failureThreshold {
			notify = b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		notify = b.moveTo(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	b.mu.Unlock()

	runNotify(notify)
}

// Execute runs fn when the breaker allows it and records the outcome.
// Cancellation by the caller is not counted as a dependency failure.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.RecordSuccess()
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		b.mu.Lock()
		if b.state == CircuitStateHalfOpen {
			b.releaseProbe()
		}
		b.mu.Unlock()
	default:
		b.RecordFailure()
	}
	return err
}

// State reports an elapsed open period as half-open without moving the
// breaker; the move happens on the next Allow.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) releaseProbe() {
	if b.probes > 0 {
		b.probes--
	}
}

// moveTo must be called with the lock held. It returns the pending
// notification, if any.
func (b *CircuitBreaker) moveTo(to CircuitState) func() {
	from := b.state
	b.state = to
	b.probes = 0
	b.succeeded = 0
	switch to {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}

	if b.onChange == nil || from == to {
		return nil
	}
	hook := b.onChange
	return func() { hook(from, to) }
}

func runNotify(fn func()) {
	if fn != nil {
		fn()
	}
}
