package syscore

// SystemClock to read and update the UNIX time of a host.
type SystemClock interface {
	// GetTimestamp returns the UNIX time in seconds.
	GetTimestamp() (int64, error)

	// SetTimestamp updates the UNIX time in seconds.
	SetTimestamp(timestamp int64) error
}
