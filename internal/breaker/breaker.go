package breaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker rejects a call without invoking
// the wrapped function.
var ErrOpen = errors.New("circuit breaker open")

// State of the breaker.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreaker isolates an unreliable external dependency. After
// failureThreshold consecutive failures it opens and fails fast; once the
// recovery timeout elapses it allows exactly one trial call whose outcome
// decides the next state. One breaker instance is shared by every call to
// the dependency, so its state is synchronized.
type CircuitBreaker struct {
	mu               sync.Mutex
	failureThreshold int
	recoveryTimeout  time.Duration

	state         State
	failures      int
	lastFailure   time.Time
	trialInFlight bool

	now func() time.Time
}

// Option tweaks breaker construction.
type Option func(*CircuitBreaker)

// WithClock overrides the wall clock for tests.
func WithClock(now func() time.Time) Option {
	return func(b *CircuitBreaker) { b.now = now }
}

// New builds a closed breaker.
func New(failureThreshold int, recoveryTimeout time.Duration, opts ...Option) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	b := &CircuitBreaker{
		failureThreshold: failureThreshold,
		recoveryTimeout:  recoveryTimeout,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Call runs fn under breaker protection. While open it returns ErrOpen
// immediately; in half-open it admits a single trial at a time.
func (b *CircuitBreaker) Call(fn func() error) error {
	if err := b.admit(); err != nil {
		return err
	}

	err := fn()
	b.record(err)
	return err
}

func (b *CircuitBreaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Open:
		if b.now().Sub(b.lastFailure) < b.recoveryTimeout {
			return ErrOpen
		}
		b.state = HalfOpen
		b.trialInFlight = true
		return nil
	case HalfOpen:
		if b.trialInFlight {
			return ErrOpen
		}
		b.trialInFlight = true
		return nil
	default:
		return nil
	}
}

func (b *CircuitBreaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.trialInFlight = false

	if err == nil {
		b.state = Closed
		b.failures = 0
		return
	}

	b.failures++
	b.lastFailure = b.now()
	if b.state == HalfOpen || b.failures >= b.failureThreshold {
		b.state = Open
	}
}

// State reports the current breaker state.
func (b *CircuitBreaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
