package dst

import (
	"fmt"
	"strings"
	"time"

	"github.com/open-control-systems/local-clock/components/status"
)

// Lookup returns the policy by its configuration name.
//
// Names:
//   - "cet", "cet-legacy" - Central European rule, legacy formula.
//   - "cet-calendar" - Central European rule, calendar computation.
//   - "utc" - no offset, no summer time.
//   - "tz:<zone>" - IANA zone, e.g. "tz:Europe/Berlin".
func Lookup(name string) (Policy, error) {
	switch name {
	case "", "cet", "cet-legacy":
		return NewCentralEuropean(ModeLegacy), nil

	case "cet-calendar":
		return NewCentralEuropean(ModeCalendar), nil

	case "utc":
		return NewFixed(0), nil
	}

	if zone, ok := strings.CutPrefix(name, "tz:"); ok {
		return NewLocation(zone, time.Now().Year())
	}

	return nil, fmt.Errorf("dst: unknown policy: name=%s: %w", name, status.StatusNotSupported)
}
