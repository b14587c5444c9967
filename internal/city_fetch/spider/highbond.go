package spider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"city-fetch/internal/city_fetch/model"
	"city-fetch/internal/city_fetch/normalize"
)

// highbondSpider reads the Highbond meetings service used by the KCK
// public schools board portal. One request covers the whole range; the
// work is in cleaning titles that embed dates and times.
type highbondSpider struct {
	base
}

type highbondMeeting struct {
	ID              int64  `json:"Id"`
	Name            string `json:"Name"`
	MeetingTypeName string `json:"MeetingTypeName"`
	MeetingDateTime string `json:"MeetingDateTime"`
	MeetingLocation string `json:"MeetingLocation"`
}

// Portal titles look like "Regular Board Meeting Agenda - April 17, 2025
// at 4:00 PM"; strip the time first, then the last dash segment, then any
// leftover date tail.
var titleTimeRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+at\s+\d{1,2}:\d{2}\s*(a\.?m\.?|p\.?m\.?)`),
	regexp.MustCompile(`(?i)\s+\d{1,2}:\d{2}\s*(a\.?m\.?|p\.?m\.?)`),
	regexp.MustCompile(`(?i)\s+\d{1,2}\s*(a\.?m\.?|p\.?m\.?)`),
}

var titleDateRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{4}$`),
	regexp.MustCompile(`\s+\d{1,2}/\d{1,2}/\d{4}$`),
	regexp.MustCompile(`\s+\d{4}$`),
	regexp.MustCompile(`\s+\d{1,2},\s+\d{4}$`),
}

func cleanMeetingTitle(title string) string {
	for _, re := range titleTimeRes {
		title = re.ReplaceAllString(title, "")
	}
	if i := strings.LastIndex(title, " - "); i >= 0 {
		title = title[:i]
	}
	for _, re := range titleDateRes {
		title = re.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}

const centralOffice = "Kansas City, Kansas Public Schools - Central Office and Training Center"

// Known venues by title keyword; the portal's own location field is often
// blank or stale.
var boardLocations = []struct {
	keyword string
	extra   string
	address string
	name    string
}{
	{"Board Retreat", "", "10 E Cambridge Circle Drive #300, Kansas City, Kansas 66103", "McAnany Van Cleave & Phillips Law Firm"},
	{"Academic Committee Meeting", "", "2010 N. 59th Street", centralOffice},
	{"Finance Committee Meeting", "", "", "Kansas City, Kansas Public Schools"},
	{"Facilities", "Committee Meeting", "2010 N. 59th Street, Third Floor East Wing", centralOffice},
	{"Boundary", "Committee Meeting", "2010 N. 59th Street, Third Floor East Wing", centralOffice},
	{"Special Board Meeting Agenda", "", "2010 N. 59th Street, Third Floor Board Room", centralOffice},
	{"Special", "", "2010 N. 59th Street", centralOffice},
	{"Regular Meeting Agenda", "", "2010 N. 59th Street, Third Floor Board Room", centralOffice},
	{"Regular Board Meeting Agenda", "", "2010 N. 59th Street, Third Floor Board Room", centralOffice},
}

func (s *highbondSpider) Crawl(ctx context.Context, emit EmitFunc) error {
	cfg := s.cfg.Highbond

	from := cfg.StartDate
	if from == "" {
		from = "2014-07-01"
	}
	now := s.now().In(s.loc)

	query := url.Values{}
	query.Set("from", from)
	query.Set("to", now.AddDate(0, 0, 365).Format("2006-01-02"))
	query.Set("loadall", "false")
	query.Set("_", strconv.FormatInt(now.UnixMilli(), 10)) // cache buster

	reqURL := fmt.Sprintf("%s/Services/MeetingsService.svc/meetings?%s", cfg.BaseURL, query.Encode())
	resp, err := s.client.R().SetContext(ctx).Get(reqURL)
	if err != nil {
		return fmt.Errorf("fetch meetings: %w", err)
	}
	var items []highbondMeeting
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return fmt.Errorf("decode meetings: %w", err)
	}

	seen := normalize.NewDedup()
	for _, item := range items {
		if item.ID == 0 || seen.Seen("meeting", strconv.FormatInt(item.ID, 10)) {
			continue
		}

		rawTitle := strings.TrimSpace(item.Name)
		if rawTitle == "" {
			rawTitle = strings.TrimSpace(item.MeetingTypeName)
		}

		start, ok := s.parseStart(item.MeetingDateTime)
		if !ok {
			continue
		}

		m := model.Meeting{
			Title:          cleanMeetingTitle(rawTitle),
			Description:    "",
			Classification: s.boardClassify(rawTitle),
			Start:          start,
			TimeNotes:      timeNotes(rawTitle),
			Location:       s.meetingLocation(rawTitle, item.MeetingLocation),
			Links: []model.Link{{
				Href:  fmt.Sprintf("%s/Portal/MeetingInformation.aspx?Org=Cal&Id=%d", cfg.BaseURL, item.ID),
				Title: "Meeting Details",
			}},
			Source: cfg.BaseURL + "/Portal/MeetingTypeList.aspx",
		}
		s.finalize(&m, emit)
	}
	return nil
}

// parseStart reads the service's "2025-04-17 16:00" wall-clock format;
// anything else fails closed and the record is dropped.
func (s *highbondSpider) parseStart(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", v, s.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// boardClassify defaults unmatched titles to Board; everything on this
// portal is a school-board body.
func (s *highbondSpider) boardClassify(rawTitle string) string {
	cls := s.classify(rawTitle)
	if cls == model.NotClassified {
		cls = model.Board
	}
	return cls
}

func (s *highbondSpider) meetingLocation(rawTitle, rawLocation string) model.Location {
	for _, known := range boardLocations {
		if strings.Contains(rawTitle, known.keyword) && (known.extra == "" || strings.Contains(rawTitle, known.extra)) {
			return model.Location{Name: known.name, Address: known.address}
		}
	}
	return normalize.Location(rawLocation, s.cfg.DefaultLocation)
}

func timeNotes(rawTitle string) string {
	notes := []string{"Please check meeting attachments for accurate time and location."}
	if strings.Contains(rawTitle, "Finance Committee Meeting") ||
		strings.Contains(rawTitle, "Special Meeting Agenda") {
		notes = append(notes, "You are invited to join virtually. Please check the attachments for the virtual link.")
	}
	return strings.Join(notes, " ")
}
