package dst

// Policy decides whether Daylight Saving Time applies and which offset
// converts UTC to local time.
//
// Remarks:
//   - Implementations should be pure: equal inputs always give equal results.
type Policy interface {
	// Name returns the policy name as used in the configuration, e.g. "cet".
	Name() string

	// IsSummerTime returns true if DST applies at the given calendar hour.
	//
	// Parameters:
	//   - year - calendar year, e.g. 2023.
	//   - month - 1..12.
	//   - day - day of month, 1..31.
	//   - hour - hour of day, 0..23.
	IsSummerTime(year, month, day, hour int) bool

	// Offset returns the number of seconds to add to UTC.
	Offset(summer bool) int64

	// ZoneName returns the abbreviated zone name, e.g. "CEST".
	ZoneName(summer bool) string
}
