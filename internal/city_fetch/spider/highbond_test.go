package spider

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"city-fetch/internal/city_fetch/model"
)

func TestCleanMeetingTitle(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Regular Board Meeting Agenda - April 17, 2025 at 4:00 PM", "Regular Board Meeting Agenda"},
		{"Finance Committee Meeting - 1/12/2026", "Finance Committee Meeting"},
		{"Board Retreat Agenda January 25, 2025", "Board Retreat Agenda"},
		{"Special Meeting Agenda 6:30 p.m.", "Special Meeting Agenda"},
		{"Academic Committee Meeting", "Academic Committee Meeting"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, cleanMeetingTitle(c.raw), "raw %q", c.raw)
	}
}

func TestTimeNotes(t *testing.T) {
	require.Equal(t,
		"Please check meeting attachments for accurate time and location.",
		timeNotes("Regular Board Meeting Agenda"))
	require.Equal(t,
		"Please check meeting attachments for accurate time and location. "+
			"You are invited to join virtually. Please check the attachments for the virtual link.",
		timeNotes("Finance Committee Meeting - 1/12/2026"))
}

func TestHighbondCrawl(t *testing.T) {
	now, loc := fixedNow(t)

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Services/MeetingsService.svc/meetings", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"Id":55,"Name":"Regular Board Meeting Agenda - April 17, 2025 at 4:00 PM",
			 "MeetingDateTime":"2025-04-17 16:00","MeetingLocation":""},
			{"Id":55,"Name":"Regular Board Meeting Agenda - April 17, 2025 at 4:00 PM",
			 "MeetingDateTime":"2025-04-17 16:00","MeetingLocation":""},
			{"Id":56,"Name":"","MeetingTypeName":"Study Session",
			 "MeetingDateTime":"2026-02-10 17:30","MeetingLocation":"Zoom link in agenda"},
			{"Id":57,"Name":"Broken Clock Meeting","MeetingDateTime":"soon"},
			{"Id":0,"Name":"Ghost","MeetingDateTime":"2026-02-10 17:30"}
		]`)
	}))
	defer srv.Close()

	cfg := model.SourceInfo{
		Name:     "kancit_kckps_boe",
		Agency:   "Kansas City Kansas Public Schools Board of Education",
		Type:     model.TypeHighbond,
		Timezone: "America/Chicago",
		Highbond: &model.HighbondConfig{
			BaseURL:   srv.URL,
			StartDate: "2014-07-01",
		},
	}
	sp, err := NewFromConfig(cfg, resty.New(), zap.NewNop())
	require.NoError(t, err)
	sp.(*highbondSpider).now = func() time.Time { return now }

	meetings := collectMeetings(t, sp)

	require.Contains(t, gotQuery, "from=2014-07-01")
	require.Contains(t, gotQuery, "loadall=false")

	// Duplicate 55 collapses, 57 has no parseable time, 0 is no record.
	require.Len(t, meetings, 2)

	regular := meetings[0]
	require.Equal(t, "Regular Board Meeting Agenda", regular.Title)
	require.Equal(t, model.Board, regular.Classification)
	require.Equal(t, time.Date(2025, 4, 17, 16, 0, 0, 0, loc), regular.Start)
	require.Equal(t, model.StatusPassed, regular.Status)
	require.Equal(t, "Kansas City, Kansas Public Schools - Central Office and Training Center", regular.Location.Name)
	require.Equal(t, "2010 N. 59th Street, Third Floor Board Room", regular.Location.Address)
	require.Equal(t, "Please check meeting attachments for accurate time and location.", regular.TimeNotes)
	require.Equal(t, []model.Link{{
		Href:  srv.URL + "/Portal/MeetingInformation.aspx?Org=Cal&Id=55",
		Title: "Meeting Details",
	}}, regular.Links)
	require.Equal(t, srv.URL+"/Portal/MeetingTypeList.aspx", regular.Source)

	// No title keyword match and no usable location text: virtual indicator
	// in the portal field wins. Everything here defaults to Board.
	study := meetings[1]
	require.Equal(t, "Study Session", study.Title)
	require.Equal(t, model.Board, study.Classification)
	require.Equal(t, model.StatusTentative, study.Status)
	require.Equal(t, model.Location{Name: "Virtual Meeting"}, study.Location)
}
