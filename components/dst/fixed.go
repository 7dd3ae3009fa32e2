package dst

import "fmt"

// Fixed is a zone without summer time.
type Fixed struct {
	offset int64
}

// NewFixed is an initialization of Fixed.
//
// Parameters:
//   - offset - seconds to add to UTC.
func NewFixed(offset int64) *Fixed {
	return &Fixed{offset: offset}
}

// Name returns "utc" for the zero offset, "utc+<seconds>" otherwise.
func (p *Fixed) Name() string {
	if p.offset == 0 {
		return "utc"
	}

	return fmt.Sprintf("utc%+d", p.offset)
}

// IsSummerTime always returns false.
func (*Fixed) IsSummerTime(_, _, _, _ int) bool {
	return false
}

// Offset returns the configured offset.
func (p *Fixed) Offset(_ bool) int64 {
	return p.offset
}

// ZoneName returns "UTC" or "UTC+hh:mm".
func (p *Fixed) ZoneName(_ bool) string {
	if p.offset == 0 {
		return "UTC"
	}

	sign := '+'
	offset := p.offset
	if offset < 0 {
		sign = '-'
		offset = -offset
	}

	return fmt.Sprintf("UTC%c%02d:%02d", sign, offset/3600, offset%3600/60)
}
