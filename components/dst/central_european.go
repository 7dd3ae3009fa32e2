package dst

import "time"

const (
	cetOffset  = int64(3600)
	cestOffset = int64(7200)
)

// Mode selects how the last Sunday of March and October is computed.
type Mode int

const (
	// ModeLegacy uses the closed-form (5*year/4 + c) % 7 approximation.
	//
	// Remarks:
	//   - Results are bit-exact with the timestamps produced by the legacy firmware.
	//   - Valid for the years 1901..2099.
	ModeLegacy Mode = iota

	// ModeCalendar uses the real calendar to find the last Sunday.
	ModeCalendar
)

// String returns string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLegacy:
		return "legacy"
	case ModeCalendar:
		return "calendar"
	default:
		return "<none>"
	}
}

// CentralEuropean implements the EU summer time rule for CET/CEST.
//
// Summer time starts on the last Sunday of March and ends on the last Sunday
// of October, both at 01:00 UTC.
type CentralEuropean struct {
	mode Mode
}

// NewCentralEuropean is an initialization of CentralEuropean.
func NewCentralEuropean(mode Mode) *CentralEuropean {
	return &CentralEuropean{mode: mode}
}

// Name returns the policy name.
func (p *CentralEuropean) Name() string {
	if p.mode == ModeCalendar {
		return "cet-calendar"
	}

	return "cet"
}

// IsSummerTime returns true during CEST.
func (p *CentralEuropean) IsSummerTime(year, month, day, hour int) bool {
	if month < 3 || month > 10 {
		return false
	}

	if month > 3 && month < 10 {
		return true
	}

	hours := hour + 24*day

	if month == 3 {
		return hours >= p.TransitionHour(year, month)
	}

	return hours < p.TransitionHour(year, month)
}

// TransitionHour returns the hour + 24*day value at which the clock changes
// in March or October of the year.
func (p *CentralEuropean) TransitionHour(year, month int) int {
	return 1 + 24*p.lastSunday(year, month)
}

// Offset returns 7200 for CEST, 3600 for CET.
func (*CentralEuropean) Offset(summer bool) int64 {
	if summer {
		return cestOffset
	}

	return cetOffset
}

// ZoneName returns "CEST" or "CET".
func (*CentralEuropean) ZoneName(summer bool) string {
	if summer {
		return "CEST"
	}

	return "CET"
}

func (p *CentralEuropean) lastSunday(year, month int) int {
	if p.mode == ModeCalendar {
		return LastSunday(year, time.Month(month))
	}

	return legacyLastSunday(year, month)
}

// legacyLastSunday works only for the 31-day months March and October.
func legacyLastSunday(year, month int) int {
	c := 1
	if month == 3 {
		c = 4
	}

	return 31 - (5*year/4+c)%7
}

// LastSunday returns the day of month of the last Sunday.
func LastSunday(year int, month time.Month) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)

	return last.Day() - int(last.Weekday())
}
