package normalize

import (
	"strings"

	"city-fetch/internal/city_fetch/model"
)

// Document roles in emit order. Video and audio labels that read like
// "Not available" are placeholders for recordings that do not exist yet.
var linkRoles = []struct {
	field    string
	defTitle string
	media    bool
}{
	{"Agenda", "Agenda", false},
	{"Minutes", "Minutes", false},
	{"iCalendar", "iCalendar", false},
	{"Video", "Video", true},
	{"Audio", "Audio", true},
}

func placeholderLabel(label string) bool {
	lower := strings.ToLower(label)
	return strings.Contains(lower, "not") || strings.Contains(lower, "available")
}

// FilterLinks selects the outbound document links from an extracted row,
// labeling each with the source text or a role default. Duplicate targets
// within one record are dropped.
func FilterLinks(ev RawEvent) []model.Link {
	links := []model.Link{}
	seen := make(map[string]struct{})

	for _, role := range linkRoles {
		v, ok := ev[role.field]
		if !ok || !v.IsLink() {
			continue
		}
		if role.media && placeholderLabel(v.Label) {
			continue
		}
		if _, dup := seen[v.URL]; dup {
			continue
		}
		seen[v.URL] = struct{}{}

		title := strings.TrimSpace(v.Label)
		if title == "" {
			title = role.defTitle
		}
		links = append(links, model.Link{Href: v.URL, Title: title})
	}
	return links
}
