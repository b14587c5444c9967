package normalize

import (
	"strings"

	"city-fetch/internal/city_fetch/model"
)

// Keyword precedence is ordered: a title containing both "council" and
// "committee" is a council meeting.
var classifications = []struct {
	keyword string
	label   string
}{
	{"council", model.CityCouncil},
	{"committee", model.Committee},
	{"commission", model.Commission},
	{"board", model.Board},
}

// Classify maps a free-text meeting title to its classification. Sources
// with a static classification configured bypass this entirely.
func Classify(title string) string {
	lower := strings.ToLower(title)
	for _, c := range classifications {
		if strings.Contains(lower, c.keyword) {
			return c.label
		}
	}
	return model.NotClassified
}
