package dst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCentralEuropeanWinterMonths(t *testing.T) {
	for _, mode := range []Mode{ModeLegacy, ModeCalendar} {
		policy := NewCentralEuropean(mode)

		for _, month := range []int{1, 2, 11, 12} {
			for day := 1; day <= 31; day++ {
				for hour := 0; hour < 24; hour++ {
					require.False(t, policy.IsSummerTime(2023, month, day, hour),
						"mode=%s month=%d day=%d hour=%d", mode, month, day, hour)
				}
			}
		}
	}
}

func TestCentralEuropeanSummerMonths(t *testing.T) {
	for _, mode := range []Mode{ModeLegacy, ModeCalendar} {
		policy := NewCentralEuropean(mode)

		for _, month := range []int{4, 5, 6, 7, 8, 9} {
			for day := 1; day <= 31; day++ {
				for hour := 0; hour < 24; hour++ {
					require.True(t, policy.IsSummerTime(2023, month, day, hour),
						"mode=%s month=%d day=%d hour=%d", mode, month, day, hour)
				}
			}
		}
	}
}

func TestCentralEuropeanMarchTransition(t *testing.T) {
	policy := NewCentralEuropean(ModeLegacy)

	require.Equal(t, 26, legacyLastSunday(2023, 3))
	require.Equal(t, 1+24*26, policy.TransitionHour(2023, 3))

	require.False(t, policy.IsSummerTime(2023, 3, 1, 0))
	require.False(t, policy.IsSummerTime(2023, 3, 25, 23))
	require.False(t, policy.IsSummerTime(2023, 3, 26, 0))
	require.True(t, policy.IsSummerTime(2023, 3, 26, 1))
	require.True(t, policy.IsSummerTime(2023, 3, 26, 2))
	require.True(t, policy.IsSummerTime(2023, 3, 31, 23))
}

func TestCentralEuropeanOctoberTransition(t *testing.T) {
	policy := NewCentralEuropean(ModeLegacy)

	require.Equal(t, 29, legacyLastSunday(2023, 10))
	require.Equal(t, 1+24*29, policy.TransitionHour(2023, 10))

	require.True(t, policy.IsSummerTime(2023, 10, 1, 0))
	require.True(t, policy.IsSummerTime(2023, 10, 28, 23))
	require.True(t, policy.IsSummerTime(2023, 10, 29, 0))
	require.False(t, policy.IsSummerTime(2023, 10, 29, 1))
	require.False(t, policy.IsSummerTime(2023, 10, 31, 23))
}

func TestCentralEuropeanFlipsOnce(t *testing.T) {
	policy := NewCentralEuropean(ModeLegacy)

	for _, year := range []int{2020, 2023, 2024, 2025, 2040} {
		for _, month := range []int{3, 10} {
			flips := 0
			prev := policy.IsSummerTime(year, month, 1, 0)

			for day := 1; day <= 31; day++ {
				for hour := 0; hour < 24; hour++ {
					curr := policy.IsSummerTime(year, month, day, hour)
					if curr != prev {
						flips++

						require.Equal(t, policy.TransitionHour(year, month), hour+24*day)
					}

					prev = curr
				}
			}

			require.Equal(t, 1, flips, "year=%d month=%d", year, month)
		}
	}
}

func TestCentralEuropeanLegacyMatchesCalendar(t *testing.T) {
	for year := 1901; year <= 2099; year++ {
		for _, month := range []int{3, 10} {
			require.Equal(t, LastSunday(year, time.Month(month)), legacyLastSunday(year, month),
				"year=%d month=%d", year, month)
		}
	}
}

func TestCentralEuropeanLegacyDivergesAfter2099(t *testing.T) {
	legacy := NewCentralEuropean(ModeLegacy)
	calendar := NewCentralEuropean(ModeCalendar)

	require.Equal(t, 27, legacyLastSunday(2100, 3))
	require.Equal(t, 28, LastSunday(2100, time.March))

	require.True(t, legacy.IsSummerTime(2100, 3, 27, 12))
	require.False(t, calendar.IsSummerTime(2100, 3, 27, 12))
}

func TestCentralEuropeanIdempotent(t *testing.T) {
	policy := NewCentralEuropean(ModeLegacy)

	for day := 1; day <= 31; day++ {
		for hour := 0; hour < 24; hour++ {
			require.Equal(t,
				policy.IsSummerTime(2023, 3, day, hour),
				policy.IsSummerTime(2023, 3, day, hour))
		}
	}
}

func TestCentralEuropeanOffset(t *testing.T) {
	policy := NewCentralEuropean(ModeLegacy)

	require.Equal(t, int64(3600), policy.Offset(false))
	require.Equal(t, int64(7200), policy.Offset(true))
	require.Equal(t, "CET", policy.ZoneName(false))
	require.Equal(t, "CEST", policy.ZoneName(true))
}

func TestLastSunday(t *testing.T) {
	require.Equal(t, 26, LastSunday(2023, time.March))
	require.Equal(t, 29, LastSunday(2023, time.October))
	require.Equal(t, 25, LastSunday(2024, time.February))
	require.Equal(t, 31, LastSunday(2024, time.March))
}
