package syscore

import "time"

// MonotonicClock to measure the time elapsed since the last server sample.
type MonotonicClock interface {
	// Now returns a reading carrying the monotonic clock component.
	//
	// Remarks:
	//  - Only differences between two readings are meaningful.
	Now() time.Time
}
