package dst

import (
	"fmt"
	"time"

	// Embedded zone database for hosts without /usr/share/zoneinfo.
	_ "time/tzdata"
)

// Location decides summer time with the IANA time zone database.
//
// Remarks:
//   - Offsets are sampled once over the reference year, zones that changed
//     their offsets since then report the reference year offsets.
type Location struct {
	loc *time.Location

	stdOffset int64
	dstOffset int64
	stdName   string
	dstName   string
}

// NewLocation is an initialization of Location.
//
// Parameters:
//   - name - IANA zone name, e.g. "Europe/Berlin".
//   - refYear - year to sample the standard and summer offsets from.
func NewLocation(name string, refYear int) (*Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("dst: failed to load location: name=%s: %w", name, err)
	}

	p := &Location{loc: loc}

	haveStd := false
	haveDst := false

	for t := time.Date(refYear, 1, 1, 12, 0, 0, 0, time.UTC); t.Year() == refYear; t = t.Add(24 * time.Hour) {
		lt := t.In(loc)
		abbr, offset := lt.Zone()

		if lt.IsDST() {
			if !haveDst {
				p.dstName, p.dstOffset, haveDst = abbr, int64(offset), true
			}
		} else if !haveStd {
			p.stdName, p.stdOffset, haveStd = abbr, int64(offset), true
		}
	}

	if !haveDst {
		p.dstName, p.dstOffset = p.stdName, p.stdOffset
	}

	return p, nil
}

// Name returns "tz:<zone>".
func (p *Location) Name() string {
	return "tz:" + p.loc.String()
}

// IsSummerTime returns true if the zone observes DST at the given UTC hour.
func (p *Location) IsSummerTime(year, month, day, hour int) bool {
	return time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC).In(p.loc).IsDST()
}

// Offset returns the zone offset in seconds.
func (p *Location) Offset(summer bool) int64 {
	if summer {
		return p.dstOffset
	}

	return p.stdOffset
}

// ZoneName returns the zone abbreviation.
func (p *Location) ZoneName(summer bool) string {
	if summer {
		return p.dstName
	}

	return p.stdName
}
