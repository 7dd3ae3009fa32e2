package dst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/local-clock/components/status"
)

func TestLookup(t *testing.T) {
	for name, want := range map[string]string{
		"":             "cet",
		"cet":          "cet",
		"cet-legacy":   "cet",
		"cet-calendar": "cet-calendar",
		"utc":          "utc",
	} {
		policy, err := Lookup(name)
		require.Nil(t, err)
		require.Equal(t, want, policy.Name())
	}
}

func TestLookupLocation(t *testing.T) {
	policy, err := Lookup("tz:Europe/Berlin")
	require.Nil(t, err)
	require.Equal(t, "tz:Europe/Berlin", policy.Name())
}

func TestLookupUnknown(t *testing.T) {
	policy, err := Lookup("mars")
	require.Nil(t, policy)
	require.ErrorIs(t, err, status.StatusNotSupported)

	policy, err = Lookup("tz:Nowhere/Nothing")
	require.Nil(t, policy)
	require.Error(t, err)
}

func TestLocationMatchesCentralEuropean(t *testing.T) {
	location, err := NewLocation("Europe/Berlin", 2023)
	require.Nil(t, err)

	cet := NewCentralEuropean(ModeLegacy)

	for ts := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC); ts.Year() == 2023; ts = ts.Add(time.Hour) {
		year, month, day, hour := ts.Year(), int(ts.Month()), ts.Day(), ts.Hour()

		require.Equal(t,
			cet.IsSummerTime(year, month, day, hour),
			location.IsSummerTime(year, month, day, hour),
			"time=%s", ts)
	}

	require.Equal(t, int64(3600), location.Offset(false))
	require.Equal(t, int64(7200), location.Offset(true))
	require.Equal(t, "CET", location.ZoneName(false))
	require.Equal(t, "CEST", location.ZoneName(true))
}

func TestLocationWithoutSummerTime(t *testing.T) {
	location, err := NewLocation("Asia/Tokyo", 2023)
	require.Nil(t, err)

	require.False(t, location.IsSummerTime(2023, 7, 1, 12))
	require.Equal(t, int64(9*3600), location.Offset(false))
	require.Equal(t, location.Offset(false), location.Offset(true))
}

func TestFixed(t *testing.T) {
	policy := NewFixed(0)
	require.Equal(t, "utc", policy.Name())
	require.Equal(t, "UTC", policy.ZoneName(false))
	require.False(t, policy.IsSummerTime(2023, 7, 1, 12))
	require.Equal(t, int64(0), policy.Offset(true))

	policy = NewFixed(-5400)
	require.Equal(t, "UTC-01:30", policy.ZoneName(false))
	require.Equal(t, int64(-5400), policy.Offset(false))
}
