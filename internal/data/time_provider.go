package data

import "time"

// TimeProvider abstracts time.Now so repo timestamps can be pinned in tests.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the wall clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (RealTimeProvider) Now() time.Time { return time.Now() }

// FixedTimeProvider always returns the configured instant.
type FixedTimeProvider struct {
	Fixed time.Time
}

// Now returns the fixed instant.
func (p FixedTimeProvider) Now() time.Time { return p.Fixed }
