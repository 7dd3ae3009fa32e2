package syscore

import "time"

// LocalMonotonicClock reads the process monotonic clock via time.Now().
type LocalMonotonicClock struct{}

// Now returns the current local time, carrying a monotonic reading.
func (*LocalMonotonicClock) Now() time.Time {
	return time.Now()
}
