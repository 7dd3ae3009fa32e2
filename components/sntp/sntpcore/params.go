package sntpcore

import "time"

const (
	// DefaultServer is the time server of the home router.
	DefaultServer = "fritz.box"

	// DefaultStartupDelay is how long to wait for the first server contact.
	DefaultStartupDelay = time.Millisecond * 100
)

// Params is an immutable time-sync client configuration.
type Params struct {
	// Server is the time server hostname, e.g. "fritz.box".
	Server string

	// Timezone is the base timezone offset in hours.
	//
	// Remarks:
	//  - Keep zero when the DST policy converts UTC to local time.
	Timezone int

	// StartupDelay is how long to wait after the client is started.
	StartupDelay time.Duration
}

// DefaultParams returns the default time-sync client configuration.
func DefaultParams() Params {
	return Params{
		Server:       DefaultServer,
		StartupDelay: DefaultStartupDelay,
	}
}
