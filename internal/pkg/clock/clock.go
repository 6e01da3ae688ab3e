package clock

import "time"

// Clocker reports the current time.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the system clock.
type TimeClocker struct{}

// New returns the system clock.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns time.Now in UTC so stored timestamps do not depend on TZ.
func (*TimeClocker) Now() time.Time {
	return time.Now().UTC()
}
