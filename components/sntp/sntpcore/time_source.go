package sntpcore

// TimestampReader reads the current UNIX time.
type TimestampReader interface {
	// CurrentTimestamp returns UNIX seconds.
	//
	// Remarks:
	//  - Implementation should return 0 or a small value until the time is known.
	CurrentTimestamp() int64
}

// TimeSource is a client synchronizing with a network time server.
type TimeSource interface {
	TimestampReader

	// Stop stops the synchronization.
	Stop() error

	// SetServer configures the time server hostname.
	SetServer(name string)

	// SetTimezone configures the offset in hours added to the reported time.
	SetTimezone(hours int)

	// Start starts the synchronization with the configured server.
	Start() error
}
