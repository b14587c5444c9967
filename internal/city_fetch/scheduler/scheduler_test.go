package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextAnchor(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	at := func(h, m int) time.Time {
		return time.Date(2026, 1, 20, h, m, 0, 0, loc)
	}

	require.Equal(t, at(6, 0).UTC(), nextAnchor(at(3, 15), loc))
	require.Equal(t, at(12, 0).UTC(), nextAnchor(at(7, 0), loc))
	require.Equal(t, at(18, 0).UTC(), nextAnchor(at(18, 0), loc))

	// Past the last anchor rolls to midnight next day.
	next := time.Date(2026, 1, 21, 0, 0, 0, 0, loc)
	require.Equal(t, next.UTC(), nextAnchor(at(23, 30), loc))
}

func TestCalculateRetryDelay(t *testing.T) {
	w := &Worker{}

	require.Equal(t, 15*time.Second, w.calculateRetryDelay(0))
	require.Equal(t, 15*time.Second, w.calculateRetryDelay(1))
	require.Equal(t, 30*time.Second, w.calculateRetryDelay(2))
	require.Equal(t, 60*time.Second, w.calculateRetryDelay(3))
	require.Equal(t, 120*time.Second, w.calculateRetryDelay(4))
}
