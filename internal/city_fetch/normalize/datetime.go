package normalize

import (
	"strings"
	"time"
)

// Calendar cells carry dates like "1/16/2026" and times like "9:00 AM".
var calendarLayouts = []string{
	"1/2/2006 3:04 PM",
	"1/2/2006",
}

// ParseCalendarTime joins a date cell and a time cell into a wall-clock
// time in loc. Malformed input fails closed: ok is false and the caller
// drops the record.
func ParseCalendarTime(dateText, timeText string, loc *time.Location) (time.Time, bool) {
	dateText = strings.TrimSpace(dateText)
	timeText = strings.TrimSpace(timeText)
	if dateText == "" {
		return time.Time{}, false
	}

	candidates := []string{dateText}
	if timeText != "" {
		candidates = []string{dateText + " " + timeText, dateText}
	}
	for _, s := range candidates {
		for _, layout := range calendarLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ParseISOTime parses API timestamps like "2026-01-15T17:30:00Z" as naive
// wall-clock values in loc; the portal reports local time with a spurious
// zone marker.
func ParseISOTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	s = strings.TrimSuffix(s, "Z")
	if i := strings.IndexAny(s, "+"); i > 0 {
		s = s[:i]
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
