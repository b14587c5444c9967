package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCalendarTime(t *testing.T) {
	loc := chicago(t)

	got, ok := ParseCalendarTime("1/16/2026", "9:00 AM", loc)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 1, 16, 9, 0, 0, 0, loc), got)

	got, ok = ParseCalendarTime("12/3/2025", "5:30 PM", loc)
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 12, 3, 17, 30, 0, 0, loc), got)

	// Date-only cells land on midnight.
	got, ok = ParseCalendarTime("1/16/2026", "", loc)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 1, 16, 0, 0, 0, 0, loc), got)

	// A junk time cell falls back to the bare date.
	got, ok = ParseCalendarTime("1/16/2026", "Deferred", loc)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 1, 16, 0, 0, 0, 0, loc), got)

	_, ok = ParseCalendarTime("", "9:00 AM", loc)
	require.False(t, ok)
	_, ok = ParseCalendarTime("sometime soon", "", loc)
	require.False(t, ok)
}

func TestParseISOTime(t *testing.T) {
	loc := chicago(t)

	// The trailing Z is a lie; the portal reports local wall-clock time.
	got, ok := ParseISOTime("2026-02-05T17:30:00Z", loc)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 2, 5, 17, 30, 0, 0, loc), got)

	got, ok = ParseISOTime("2026-02-05T17:30", loc)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 2, 5, 17, 30, 0, 0, loc), got)

	got, ok = ParseISOTime("2026-02-05T17:30:00+00:00", loc)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 2, 5, 17, 30, 0, 0, loc), got)

	_, ok = ParseISOTime("", loc)
	require.False(t, ok)
	_, ok = ParseISOTime("02/05/2026", loc)
	require.False(t, ok)
}
