package normalize

import (
	"regexp"
	"strings"

	"city-fetch/internal/city_fetch/model"
)

// virtualLocation is returned for anything that smells like meeting
// software rather than a place.
var virtualLocation = model.Location{Name: "Virtual Meeting", Address: ""}

var virtualIndicators = []string{
	"zoom",
	"virtual",
	"teams.microsoft.com",
	"webex",
	"gotomeeting",
	"meet.google.com",
}

var (
	leadingPhoneRe = regexp.MustCompile(`^\s*(\+?1[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	phoneLineRe    = regexp.MustCompile(`^\s*(\+?1[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}[\s.,;#]*$`)
	conferenceRe   = regexp.MustCompile(`(?i)^\s*conference\s*id\b`)
	meetingIDRe    = regexp.MustCompile(`(?i)^\s*(meeting\s*id|passcode|password|access\s*code)\b`)
	bareURLRe      = regexp.MustCompile(`^\s*https?://\S+\s*$`)
	zipRe          = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)
	danglingTypeRe = regexp.MustCompile(`(?i)(^|\s)((board|committee|commission)\s+)?(meeting|session)\s*$`)
	innerSpacesRe  = regexp.MustCompile(`\s+`)
)

func mentionsVirtualPlatform(s string) bool {
	lower := strings.ToLower(s)
	for _, ind := range virtualIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// dropLine reports whether a line is meeting-software boilerplate rather
// than part of a venue name or address.
func dropLine(line string) bool {
	return phoneLineRe.MatchString(line) ||
		conferenceRe.MatchString(line) ||
		meetingIDRe.MatchString(line) ||
		bareURLRe.MatchString(line) ||
		mentionsVirtualPlatform(line)
}

// Location normalizes free-text location fields. Government pages mix full
// addresses, bare venue names, and video-call boilerplate in one field; the
// ZIP heuristic separates "address" from "venue name" without geocoding.
// First matching rule wins:
//  1. empty input -> configured fallback (or empty location)
//  2. virtual-platform indicator anywhere -> "Virtual Meeting"
//  3. leading phone number -> "Virtual Meeting"
//  4. clean the text; ZIP present -> address, otherwise configured
//     fallback if any, otherwise venue name
func Location(raw string, fallback model.Location) model.Location {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if mentionsVirtualPlatform(raw) {
		return virtualLocation
	}
	if leadingPhoneRe.MatchString(raw) {
		return virtualLocation
	}

	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || dropLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	cleaned := strings.Join(kept, " ")
	cleaned = innerSpacesRe.ReplaceAllString(cleaned, " ")
	cleaned = danglingTypeRe.ReplaceAllString(cleaned, "")
	cleaned = strings.Trim(cleaned, " ,-")

	if cleaned == "" {
		return fallback
	}
	if zipRe.MatchString(cleaned) {
		return model.Location{Name: "", Address: cleaned}
	}
	// No street address to speak of. A configured fallback beats guessing
	// that the leftover text is a venue name.
	if fallback != (model.Location{}) {
		return fallback
	}
	return model.Location{Name: cleaned, Address: ""}
}
