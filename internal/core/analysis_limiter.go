package core

// analysis_limiter.go bounds how many analyses run at once.
//
// Parsing and the O(k²·n) correlation pass are CPU and memory bound, so the
// server admits at most a fixed number in parallel. When all slots are busy
// a request waits up to maxWait before failing with ErrTooManyAnalyses.
// WaitForDrain lets shutdown block until running analyses finish.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyAnalyses is returned when no analysis slot frees up within the
// wait timeout. Clients should retry after a short delay.
var ErrTooManyAnalyses = errors.New("too many analyses in progress")

const (
	// DefaultMaxConcurrentAnalyses is used when no positive limit is given.
	DefaultMaxConcurrentAnalyses = 4

	// DefaultMaxWait is used when no positive wait timeout is given.
	DefaultMaxWait = 10 * time.Second
)

// AnalysisLimiter is a counting semaphore over analysis slots.
type AnalysisLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.Mutex
	active int
	idle   chan struct{} // closed while active == 0
}

// NewAnalysisLimiter allows at most maxConcurrent simultaneous analyses.
// Non-positive arguments select the package defaults.
func NewAnalysisLimiter(maxConcurrent int, maxWait time.Duration) *AnalysisLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentAnalyses
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}

	idle := make(chan struct{})
	close(idle)

	return &AnalysisLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
		idle:    idle,
	}
}

// Acquire takes a slot, waiting up to the limiter's timeout. It returns
// ctx.Err() if ctx ends first and ErrTooManyAnalyses on timeout.
// Every successful Acquire must be paired with Release.
func (l *AnalysisLimiter) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case l.slots <- struct{}{}:
		l.enter()
		return nil
	default:
	}

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.enter()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyAnalyses
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *AnalysisLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.enter()
		return true
	default:
		return false
	}
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *AnalysisLimiter) Release() {
	l.mu.Lock()
	l.active--
	if l.active == 0 {
		close(l.idle)
	}
	l.mu.Unlock()

	<-l.slots
}

func (l *AnalysisLimiter) enter() {
	l.mu.Lock()
	if l.active == 0 {
		l.idle = make(chan struct{})
	}
	l.active++
	l.mu.Unlock()
}

// ActiveCount returns the number of analyses holding a slot.
func (l *AnalysisLimiter) ActiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// MaxConcurrent returns the slot count.
func (l *AnalysisLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// Available returns the number of free slots.
func (l *AnalysisLimiter) Available() int {
	return cap(l.slots) - len(l.slots)
}

// WaitForDrain blocks until no analysis holds a slot or ctx ends.
func (l *AnalysisLimiter) WaitForDrain(ctx context.Context) error {
	l.mu.Lock()
	idle := l.idle
	l.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LimiterStatus is a point-in-time view of an AnalysisLimiter.
type LimiterStatus struct {
	Active        int `json:"active" yaml:"active"`
	Available     int `json:"available" yaml:"available"`
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`
}

// Status reports the limiter's current occupancy.
func (l *AnalysisLimiter) Status() LimiterStatus {
	return LimiterStatus{
		Active:        l.ActiveCount(),
		Available:     l.Available(),
		MaxConcurrent: l.MaxConcurrent(),
	}
}
