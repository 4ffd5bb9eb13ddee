package ports

import "time"

// Clock is the injectable time source for all timer arithmetic, so tests can
// simulate holding-window expiry without real delays.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock reading the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
