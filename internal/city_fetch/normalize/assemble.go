package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"city-fetch/internal/city_fetch/model"
)

// Cancellations only show up as markers in the title text.
var cancelledMarkers = []string{"cancel", "postpon", "resched", "no meeting"}

// Status derives the temporal state of a meeting relative to now. A start
// at or before now counts as passed.
func Status(title string, start, now time.Time) string {
	lower := strings.ToLower(title)
	for _, marker := range cancelledMarkers {
		if strings.Contains(lower, marker) {
			return model.StatusCancelled
		}
	}
	if !start.After(now) {
		return model.StatusPassed
	}
	return model.StatusTentative
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.ToLower(s)
	s = nonSlugRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// ID derives the deterministic record identity downstream consumers upsert
// on: "<spider>/<start as YYYYMMDDhhmm>/x/<slugified title>".
func ID(spider string, start time.Time, title string) string {
	return fmt.Sprintf("%s/%s/x/%s", spider, start.Format("200601021504"), slugify(title))
}

// Finalize fills the derived Meeting fields. It reports false for records
// with no start time, which are dropped rather than emitted.
func Finalize(m *model.Meeting, spider string, now time.Time) bool {
	if m.Start.IsZero() {
		return false
	}
	m.Title = strings.TrimSpace(m.Title)
	m.Spider = spider
	m.Status = Status(m.Title, m.Start, now)
	m.ID = ID(spider, m.Start, m.Title)
	m.UpdatedAt = now.UTC()
	return true
}
