package spider

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"city-fetch/internal/city_fetch/model"
	"city-fetch/internal/city_fetch/normalize"
)

// legistarSpider scrapes a Legistar ASP.NET calendar. The page is a
// postback form: selecting a year re-renders the calendar grid, so the
// spider replays the hidden form secrets once per year from the configured
// start year up to the last year offered by the page's year dropdown.
type legistarSpider struct {
	base
}

const yearDropdownTarget = "ctl00$ContentPlaceHolder1$lstYears"

func (s *legistarSpider) Crawl(ctx context.Context, emit EmitFunc) error {
	cfg := s.cfg.Legistar

	baseURL, err := url.Parse(cfg.CalendarURL)
	if err != nil {
		return fmt.Errorf("invalid calendar url %q: %w", cfg.CalendarURL, err)
	}

	resp, err := s.client.R().SetContext(ctx).Get(cfg.CalendarURL)
	if err != nil {
		return fmt.Errorf("fetch calendar page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return fmt.Errorf("parse calendar page: %w", err)
	}

	// One dedup set for the whole run: the same meeting shows up in the
	// upcoming grid, the current-month view, and its year's grid.
	seen := normalize.NewDedup()

	// The initial page shows the current month plus the upcoming grid;
	// only the all-tables variant consumes it directly.
	if cfg.AllTables {
		s.parsePage(doc, baseURL, seen, emit)
	}

	secrets := parseSecrets(doc)
	maxYear := maxYearFromDropdown(doc, s.now().In(s.loc).Year())

	for year := cfg.StartYear; year <= maxYear; year++ {
		form := make(map[string]string, len(secrets)+2)
		for k, v := range secrets {
			form[k] = v
		}
		form["__EVENTTARGET"] = yearDropdownTarget
		form["ctl00_ContentPlaceHolder1_lstYears_ClientState"] = fmt.Sprintf(`{"value":"%d"}`, year)

		resp, err := s.client.R().SetContext(ctx).SetFormData(form).Post(cfg.CalendarURL)
		if err != nil {
			s.log.Error("Failed to fetch calendar year", zap.Int("year", year), zap.Error(err))
			continue
		}
		pageDoc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
		if err != nil {
			s.log.Error("Failed to parse calendar year", zap.Int("year", year), zap.Error(err))
			continue
		}
		s.parsePage(pageDoc, baseURL, seen, emit)
	}
	return nil
}

func (s *legistarSpider) parsePage(doc *goquery.Document, base *url.URL, seen *normalize.Dedup, emit EmitFunc) {
	cfg := s.cfg.Legistar

	for _, ev := range normalize.ExtractCalendarRows(doc, base, !cfg.AllTables, seen, s.log) {
		title := ev.Text("Name")
		if cfg.AgencyFilter != "" && title != cfg.AgencyFilter {
			continue
		}
		start, ok := normalize.ParseCalendarTime(ev.Text("Meeting Date"), ev.Text("Meeting Time"), s.loc)
		if !ok {
			continue
		}

		m := model.Meeting{
			Title:          title,
			Description:    "",
			Classification: s.classify(title),
			Start:          start,
			Location:       normalize.Location(ev.Text("Meeting Location"), s.cfg.DefaultLocation),
			Links:          normalize.FilterLinks(ev),
			Source:         s.sourceURL(ev),
		}
		s.finalize(&m, emit)
	}
}

// sourceURL prefers the human-viewable detail page over the calendar.
func (s *legistarSpider) sourceURL(ev normalize.RawEvent) string {
	if u := ev.URL("Meeting Details"); u != "" {
		return u
	}
	if u := ev.URL("Name"); u != "" {
		return u
	}
	return s.cfg.Legistar.CalendarURL
}

// parseSecrets collects the ASP.NET state fields (__VIEWSTATE and friends)
// needed to replay the form postback.
func parseSecrets(doc *goquery.Document) map[string]string {
	secrets := make(map[string]string)
	doc.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		name := input.AttrOr("name", "")
		if strings.HasPrefix(name, "__") {
			secrets[name] = input.AttrOr("value", "")
		}
	})
	return secrets
}

// maxYearFromDropdown discovers the newest year the calendar offers. The
// control is a Telerik combo box; a plain select is checked as a fallback,
// and a page without either yields current year + 1.
func maxYearFromDropdown(doc *goquery.Document, currentYear int) int {
	options := doc.Find("#ctl00_ContentPlaceHolder1_lstYears_DropDown .rcbList li")
	if options.Length() == 0 {
		options = doc.Find("select[id*=lstYears] option")
	}

	maxYear := 0
	options.Each(func(_ int, opt *goquery.Selection) {
		year, err := strconv.Atoi(strings.TrimSpace(opt.Text()))
		if err == nil && year > maxYear {
			maxYear = year
		}
	})
	if maxYear == 0 {
		return currentYear + 1
	}
	return maxYear
}
