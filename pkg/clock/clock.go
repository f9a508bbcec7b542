// Package clock abstracts wall-clock reads and delayed callbacks so that
// timer-driven components can be driven deterministically in tests.
package clock

import "time"

// Clock reads the current time and schedules cancellable callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback created by Clock.AfterFunc.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// fired or was already stopped.
	Stop() bool
}

// Real is the Clock backed by the time package.
type Real struct{}

// NewReal returns the system clock.
func NewReal() Real {
	return Real{}
}

// Now implements Clock.
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc implements Clock.
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
