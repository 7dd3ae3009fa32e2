package sntpcore

import (
	"context"
	"time"
)

// Sample is a single measurement of the server time.
type Sample struct {
	// Time is the server time at the moment the response was received.
	Time time.Time

	// Offset is the estimated offset of the local clock relative to the server.
	Offset time.Duration

	// RTT is the round-trip time of the query.
	RTT time.Duration

	// Stratum is the NTP stratum of the server, 0 if unknown.
	Stratum uint8
}

// Querier obtains a time sample from a server.
type Querier interface {
	// Query queries the server for the current time.
	Query(ctx context.Context, server string) (Sample, error)
}
