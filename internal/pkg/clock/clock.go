package clock

import "time"

// Clocker abstracts the wall clock.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads time.Now.
type TimeClocker struct{}

// New returns the system clock.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}
