package spider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"city-fetch/internal/city_fetch/model"
	"city-fetch/internal/city_fetch/normalize"
)

// civicClerkSpider reads a CivicClerk events API. Two odata queries cover
// the configured range, past events descending and upcoming ascending, and
// each is followed through its @odata.nextLink pages.
type civicClerkSpider struct {
	base
}

type civicEvent struct {
	ID               int64  `json:"id"`
	EventName        string `json:"eventName"`
	EventDescription string `json:"eventDescription"`
	StartDateTime    string `json:"startDateTime"`
	EndDateTime      string `json:"endDateTime"`
	EventLocation    struct {
		Address1 string `json:"address1"`
		Address2 string `json:"address2"`
		City     string `json:"city"`
		State    string `json:"state"`
		ZipCode  string `json:"zipCode"`
	} `json:"eventLocation"`
	PublishedFiles []struct {
		FileID int64  `json:"fileId"`
		Type   string `json:"type"`
	} `json:"publishedFiles"`
}

type civicEventsPage struct {
	Value    []civicEvent `json:"value"`
	NextLink string       `json:"@odata.nextLink"`
}

func (s *civicClerkSpider) Crawl(ctx context.Context, emit EmitFunc) error {
	cfg := s.cfg.CivicClerk

	startDate := cfg.StartDate
	if startDate == "" {
		startDate = "2015-05-01"
	}
	months := cfg.MonthsAhead
	if months <= 0 {
		months = 3
	}
	now := s.now().In(s.loc)
	today := now.Format("2006-01-02")
	endDate := now.AddDate(0, months, 0).Format("2006-01-02")

	ids := make([]string, len(cfg.CategoryIDs))
	for i, id := range cfg.CategoryIDs {
		ids[i] = strconv.Itoa(id)
	}
	filter := fmt.Sprintf("categoryId+in+(%s)", strings.Join(ids, ","))

	urls := []string{
		fmt.Sprintf("%s/v1/Events?$filter=startDateTime+ge+%s+and+startDateTime+lt+%s+and+%s&$orderby=startDateTime+desc,+eventName+desc",
			cfg.APIBaseURL, startDate, today, filter),
		fmt.Sprintf("%s/v1/Events?$filter=startDateTime+ge+%s+and+startDateTime+le+%s+and+%s&$orderby=startDateTime+asc,+eventName+asc",
			cfg.APIBaseURL, today, endDate, filter),
	}

	seen := normalize.NewDedup()
	for _, u := range urls {
		if err := s.crawlPages(ctx, u, seen, emit); err != nil {
			return err
		}
	}
	return nil
}

func (s *civicClerkSpider) crawlPages(ctx context.Context, pageURL string, seen *normalize.Dedup, emit EmitFunc) error {
	for pageURL != "" {
		resp, err := s.client.R().SetContext(ctx).Get(pageURL)
		if err != nil {
			return fmt.Errorf("fetch events page: %w", err)
		}
		var page civicEventsPage
		if err := json.Unmarshal(resp.Body(), &page); err != nil {
			return fmt.Errorf("decode events page: %w", err)
		}
		for _, ev := range page.Value {
			s.emitEvent(ev, seen, emit)
		}
		pageURL = page.NextLink
	}
	return nil
}

func (s *civicClerkSpider) emitEvent(ev civicEvent, seen *normalize.Dedup, emit EmitFunc) {
	if ev.ID == 0 {
		return
	}
	eventID := strconv.FormatInt(ev.ID, 10)
	if seen.Seen("event", eventID) {
		return
	}

	title := ev.EventName
	if title == "" {
		title = s.cfg.Agency
	}
	// Cancellation edits leave empty parentheses behind in event names.
	title = strings.TrimSpace(strings.ReplaceAll(title, "()", ""))

	start, ok := normalize.ParseISOTime(ev.StartDateTime, s.loc)
	if !ok {
		s.log.Debug("Event without parseable start", zap.String("event_id", eventID))
		return
	}
	var end *time.Time
	if t, ok := normalize.ParseISOTime(ev.EndDateTime, s.loc); ok {
		end = &t
	}

	m := model.Meeting{
		Title:          title,
		Description:    ev.EventDescription,
		Classification: s.classify(title),
		Start:          start,
		End:            end,
		Location:       s.eventLocation(ev),
		Links:          s.eventLinks(ev, eventID),
		Source:         fmt.Sprintf("%s/event/%s", s.cfg.CivicClerk.PortalBaseURL, eventID),
	}
	s.finalize(&m, emit)
}

func (s *civicClerkSpider) eventLocation(ev civicEvent) model.Location {
	loc := ev.EventLocation

	cityLine := joinNonEmpty(", ", loc.City, loc.State, loc.ZipCode)
	address := joinNonEmpty(" ", loc.Address1, loc.Address2, cityLine)
	if address == "" {
		address = s.cfg.DefaultLocation.Address
	}
	return model.Location{
		Name:    s.cfg.DefaultLocation.Name,
		Address: address,
	}
}

func (s *civicClerkSpider) eventLinks(ev civicEvent, eventID string) []model.Link {
	links := []model.Link{}
	for _, f := range ev.PublishedFiles {
		if f.FileID == 0 {
			continue
		}
		title := f.Type
		if title == "" {
			title = "Document"
		}
		links = append(links, model.Link{
			Href:  fmt.Sprintf("%s/event/%s/files/agenda/%d", s.cfg.CivicClerk.PortalBaseURL, eventID, f.FileID),
			Title: title,
		})
	}
	return links
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
