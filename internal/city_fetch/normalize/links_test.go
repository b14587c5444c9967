package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"city-fetch/internal/city_fetch/model"
)

func TestFilterLinks(t *testing.T) {
	ev := RawEvent{
		"Name":      {Label: "City Council", URL: "http://x/dept"},
		"Agenda":    {Label: "Agenda", URL: "http://x/agenda"},
		"Minutes":   {Label: "", URL: "http://x/minutes"},
		"iCalendar": {URL: "http://x/View.ashx?M=IC&ID=5"},
		"Video":     {Label: "Video", URL: "http://x/video"},
		"Audio":     {Label: "Not available", URL: "http://x/audio"},
	}

	links := FilterLinks(ev)
	require.Equal(t, []model.Link{
		{Href: "http://x/agenda", Title: "Agenda"},
		{Href: "http://x/minutes", Title: "Minutes"},
		{Href: "http://x/View.ashx?M=IC&ID=5", Title: "iCalendar"},
		{Href: "http://x/video", Title: "Video"},
	}, links)
}

func TestFilterLinksPlaceholders(t *testing.T) {
	// "Not available" style labels on recordings are placeholders, not links
	// worth keeping. Document roles keep theirs regardless.
	ev := RawEvent{
		"Agenda": {Label: "Not available", URL: "http://x/agenda"},
		"Video":  {Label: "Not Available", URL: "http://x/video"},
		"Audio":  {Label: "available soon", URL: "http://x/audio"},
	}
	require.Equal(t, []model.Link{
		{Href: "http://x/agenda", Title: "Not available"},
	}, FilterLinks(ev))
}

func TestFilterLinksDedupesTargets(t *testing.T) {
	ev := RawEvent{
		"Agenda":  {Label: "Agenda", URL: "http://x/doc"},
		"Minutes": {Label: "Minutes", URL: "http://x/doc"},
	}
	require.Equal(t, []model.Link{
		{Href: "http://x/doc", Title: "Agenda"},
	}, FilterLinks(ev))
}

func TestFilterLinksSkipsPlainText(t *testing.T) {
	ev := RawEvent{
		"Agenda":  {Text: "Not posted"},
		"Minutes": {},
	}
	require.Empty(t, FilterLinks(ev))
}
