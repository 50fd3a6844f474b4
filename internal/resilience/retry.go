// Package resilience provides the retry machinery used for WFS page fetches.
//
// The retry loop is modeled as an explicit state machine so the attempt bound
// and termination condition can be tested without any network I/O.
package resilience

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// State is the current position of a retry sequence.
type State int

const (
	// StateAttempting means a try is in flight (or about to start).
	StateAttempting State = iota
	// StateRetrying means the last try failed and another is allowed after
	// the configured delay.
	StateRetrying
	// StateSucceeded is terminal: the last try returned no error.
	StateSucceeded
	// StateAbandoned is terminal: the attempt budget is exhausted or the
	// error is not retryable.
	StateAbandoned
)

func (s State) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateRetrying:
		return "retrying"
	case StateSucceeded:
		return "succeeded"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Policy controls fixed-delay retry behavior.
type Policy struct {
	// MaxAttempts is the total number of tries (including the first).
	// A value of 1 means no retries. Default: 3.
	MaxAttempts int

	// Delay is the fixed pause between consecutive tries. Default: 5s.
	Delay time.Duration

	// ShouldRetry optionally overrides the default transient-error check.
	// If nil, IsTransient is used.
	ShouldRetry func(err error) bool

	// OnRetry is called before each retry sleep with the number of the try
	// that just failed and its error.
	OnRetry func(attempt int, err error)
}

// DefaultPolicy returns the retry policy used against the DERA services.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Delay:       5 * time.Second,
	}
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.Delay <= 0 {
		p.Delay = 5 * time.Second
	}
	if p.ShouldRetry == nil {
		p.ShouldRetry = IsTransient
	}
	return p
}

// Tracker drives the retry state machine. It holds no I/O: callers perform
// the try themselves and feed the outcome into Record.
type Tracker struct {
	policy  Policy
	attempt int
	state   State
}

// NewTracker returns a tracker in StateAttempting for its first try.
func NewTracker(p Policy) *Tracker {
	return &Tracker{policy: p.withDefaults(), attempt: 1, state: StateAttempting}
}

// State returns the current state.
func (t *Tracker) State() State { return t.state }

// Attempt returns the 1-based number of the try in flight (or, in a terminal
// state, the number of the last try made).
func (t *Tracker) Attempt() int { return t.attempt }

// Record feeds the outcome of the current try into the machine and returns
// the resulting state. A nil error moves to StateSucceeded. A retryable error
// with budget left moves to StateRetrying; otherwise StateAbandoned.
// Record must not be called from a terminal state.
func (t *Tracker) Record(err error) State {
	if err == nil {
		t.state = StateSucceeded
		return t.state
	}
	if !t.policy.ShouldRetry(err) || t.attempt >= t.policy.MaxAttempts {
		t.state = StateAbandoned
		return t.state
	}
	if t.policy.OnRetry != nil {
		t.policy.OnRetry(t.attempt, err)
	}
	t.state = StateRetrying
	return t.state
}

// Wait sleeps the fixed retry delay and arms the next try, moving the machine
// from StateRetrying back to StateAttempting. Context cancellation abandons
// the sequence instead.
func (t *Tracker) Wait(ctx context.Context) State {
	timer := time.NewTimer(t.policy.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		t.state = StateAbandoned
		return t.state
	case <-timer.C:
	}
	t.attempt++
	t.state = StateAttempting
	return t.state
}

// Do executes fn under policy p until it succeeds or the machine abandons.
// The last error is returned on abandonment.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	_, err := DoVal(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoVal is like Do but preserves the value from the successful try.
func DoVal[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	t := NewTracker(p)
	for {
		val, err := fn(ctx)
		switch t.Record(err) {
		case StateSucceeded:
			return val, nil
		case StateAbandoned:
			return zero, err
		case StateRetrying:
			if t.Wait(ctx) == StateAbandoned {
				return zero, err
			}
		}
	}
}

// RetryLogger returns an OnRetry callback that logs each retry attempt.
func RetryLogger(service, operation string) func(int, error) {
	return func(attempt int, err error) {
		zap.L().Warn("retrying operation",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}
