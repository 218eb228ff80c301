// Copyright (c) 2026 Abhishek Sirothia.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package faceverify

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MatchThreshold is the minimum confidence a comparison must report
// before a cast is allowed to proceed. Anything below fails closed.
const MatchThreshold = 0.85

var ErrCancelled = errors.New("face verification cancelled")

// Result is the outcome of comparing a live capture against the
// voter's enrolled face template.
type Result struct {
	Matched    bool
	Confidence float64
}

// Accepted reports whether the result clears the match threshold.
func (r Result) Accepted() bool {
	return r.Matched && r.Confidence >= MatchThreshold
}

// Verifier compares a live capture against a voter's enrolled template.
// Begin acquires a capture session; the caller must Close it on every
// exit path, including cancellation.
type Verifier interface {
	Begin(ctx context.Context, voterID string) (Session, error)
}

// Session is a single capture session. Close releases the capture
// resource and is safe to call more than once.
type Session interface {
	Verify(ctx context.Context) (Result, error)
	Close()
}

// Simulated is a stand-in verifier with no real biometric matching:
// it holds the session open for a fixed delay and reports a full
// confidence match. Open session counting exists so callers can assert
// the release-on-every-path contract.
type Simulated struct {
	Delay time.Duration

	mu   sync.Mutex
	open int
}

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{Delay: delay}
}

func (s *Simulated) Begin(ctx context.Context, voterID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.open++
	s.mu.Unlock()

	return &simulatedSession{verifier: s}, nil
}

// OpenSessions returns the number of capture sessions not yet closed.
func (s *Simulated) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

type simulatedSession struct {
	verifier *Simulated
	once     sync.Once
}

func (ss *simulatedSession) Verify(ctx context.Context) (Result, error) {
	timer := time.NewTimer(ss.verifier.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Result{}, ErrCancelled
	case <-timer.C:
	}

	return Result{Matched: true, Confidence: 1.0}, nil
}

func (ss *simulatedSession) Close() {
	ss.once.Do(func() {
		ss.verifier.mu.Lock()
		ss.verifier.open--
		ss.verifier.mu.Unlock()
	})
}
