package syscore

import "time"

// UnixSystemClock operates on the clock of the host the process is running on.
//
// Remarks:
//   - Setting the time requires CAP_SYS_TIME or root privileges.
//   - Setting the time is supported only on Linux.
type UnixSystemClock struct{}

// GetTimestamp returns the host UNIX time.
func (*UnixSystemClock) GetTimestamp() (int64, error) {
	return time.Now().Unix(), nil
}

// SetTimestamp sets the host UNIX time.
func (*UnixSystemClock) SetTimestamp(timestamp int64) error {
	return setSystemTime(time.Unix(timestamp, 0))
}
