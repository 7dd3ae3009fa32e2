//go:build !linux

package syscore

import (
	"time"

	"github.com/open-control-systems/local-clock/components/status"
)

func setSystemTime(_ time.Time) error {
	return status.StatusNotSupported
}
