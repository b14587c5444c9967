package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"city-fetch/internal/city_fetch/model"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

func TestStatus(t *testing.T) {
	loc := chicago(t)
	now := time.Date(2026, 1, 20, 12, 0, 0, 0, loc)

	require.Equal(t, model.StatusCancelled, Status("City Council - CANCELLED", now.Add(time.Hour), now))
	require.Equal(t, model.StatusCancelled, Status("Postponed: Park Board", now.Add(time.Hour), now))
	require.Equal(t, model.StatusCancelled, Status("Rescheduled Work Session", now.Add(time.Hour), now))
	require.Equal(t, model.StatusCancelled, Status("No Meeting This Week", now.Add(time.Hour), now))

	// Cancellation markers win even for past meetings.
	require.Equal(t, model.StatusCancelled, Status("Cancelled Session", now.Add(-time.Hour), now))

	require.Equal(t, model.StatusPassed, Status("City Council", now.Add(-time.Second), now))
	require.Equal(t, model.StatusPassed, Status("City Council", now, now))
	require.Equal(t, model.StatusTentative, Status("City Council", now.Add(time.Second), now))
}

func TestID(t *testing.T) {
	loc := chicago(t)
	start := time.Date(2026, 1, 16, 9, 0, 0, 0, loc)

	require.Equal(t,
		"kancit_missouricity/202601160900/x/city_council",
		ID("kancit_missouricity", start, "City Council"))
	require.Equal(t,
		"src/202601160900/x/finance_audit_committee",
		ID("src", start, "  Finance & Audit: Committee!  "))

	// Same inputs, same id.
	require.Equal(t,
		ID("src", start, "City Council"),
		ID("src", start, "City Council"))
}

func TestFinalize(t *testing.T) {
	loc := chicago(t)
	now := time.Date(2026, 1, 20, 12, 0, 0, 0, loc)

	m := model.Meeting{Title: "  City Council  ", Start: time.Date(2026, 1, 16, 9, 0, 0, 0, loc)}
	require.True(t, Finalize(&m, "kancit_missouricity", now))
	require.Equal(t, "City Council", m.Title)
	require.Equal(t, "kancit_missouricity", m.Spider)
	require.Equal(t, model.StatusPassed, m.Status)
	require.Equal(t, "kancit_missouricity/202601160900/x/city_council", m.ID)
	require.Equal(t, now.UTC(), m.UpdatedAt)

	// No start time, no record.
	empty := model.Meeting{Title: "City Council"}
	require.False(t, Finalize(&empty, "kancit_missouricity", now))
}
