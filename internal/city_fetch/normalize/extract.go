package normalize

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Telerik grids open detail pages through onclick popups instead of hrefs.
var popupPrefixes = []string{"radopen('", "window.open", "OpenTelerikWindow"}

const icalMarker = "View.ashx?M=IC"

func collectText(node *html.Node, parts *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		*parts = append(*parts, node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, parts)
	}
}

// cellText concatenates every text node in the selection, turning
// non-breaking spaces into regular ones.
func cellText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	s := strings.Join(parts, " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = innerSpacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// headerNames reads the grid's column headers: visible text, then an input
// value, then an image alt, then "".
func headerNames(table *goquery.Selection) []string {
	var headers []string
	table.Find("th[class^=rgHeader]").Each(func(_ int, th *goquery.Selection) {
		if text := cellText(th); text != "" {
			headers = append(headers, text)
			return
		}
		if input := th.Find("input").First(); input.Length() > 0 {
			headers = append(headers, input.AttrOr("value", ""))
			return
		}
		headers = append(headers, th.Find("img").First().AttrOr("alt", ""))
	})
	return headers
}

// cellLink resolves the first hyperlink in a cell, following the popup
// onclick pattern when there is no plain href.
func cellLink(cell *goquery.Selection, base *url.URL) (string, error) {
	a := cell.Find("a").First()
	if a.Length() == 0 {
		return "", nil
	}

	raw := ""
	if onclick, ok := a.Attr("onclick"); ok && hasPopupPrefix(onclick) {
		quoted := strings.Split(onclick, "'")
		if len(quoted) < 2 {
			return "", fmt.Errorf("unparseable onclick popup: %q", onclick)
		}
		raw = quoted[1]
	} else if href, ok := a.Attr("href"); ok {
		raw = href
	}
	if raw == "" {
		return "", nil
	}

	resolved, err := base.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("resolve link %q: %w", raw, err)
	}
	return resolved.String(), nil
}

func hasPopupPrefix(onclick string) bool {
	for _, prefix := range popupPrefixes {
		if strings.HasPrefix(onclick, prefix) {
			return true
		}
	}
	return false
}

func extractRow(row *goquery.Selection, headers []string, base *url.URL) (RawEvent, error) {
	ev := make(RawEvent, len(headers))
	cells := row.Find("td")

	// Zip strictly by position; ragged rows keep whatever pairs exist.
	n := cells.Length()
	if len(headers) < n {
		n = len(headers)
	}
	for i := 0; i < n; i++ {
		header := headers[i]
		cell := cells.Eq(i)
		text := cellText(cell)

		link, err := cellLink(cell, base)
		if err != nil {
			return nil, err
		}
		if link == "" {
			ev[header] = FieldValue{Text: text}
			continue
		}
		// Unlabeled or "ics" columns holding an iCalendar export get a
		// synthetic field name.
		if (header == "" || header == "ics") && strings.Contains(link, icalMarker) {
			ev["iCalendar"] = FieldValue{URL: link}
			continue
		}
		ev[header] = FieldValue{Label: text, URL: link}
	}
	return ev, nil
}

// ExtractCalendarRows turns a Legistar calendar page into raw events. With
// calendarOnly set, only the gridCalendar table is read; otherwise every
// grid on the page is, including the upcoming-meetings one. Rows that fail
// to extract are logged and skipped, and rows repeating an already-seen
// (detail URL, date, time) key are dropped.
func ExtractCalendarRows(doc *goquery.Document, base *url.URL, calendarOnly bool, seen *Dedup, log *zap.Logger) []RawEvent {
	tables := doc.Find("table.rgMasterTable")
	if calendarOnly {
		tables = doc.Find("table.rgMasterTable[id*=gridCalendar]").First()
	}

	var events []RawEvent
	tables.Each(func(_ int, table *goquery.Selection) {
		headers := headerNames(table)
		table.Find("tr.rgRow, tr.rgAltRow").Each(func(_ int, row *goquery.Selection) {
			ev, err := extractRow(row, headers, base)
			if err != nil {
				log.Warn("Skipping unparseable calendar row", zap.Error(err))
				return
			}
			if seen.Seen(ev.URL("Name"), ev.Text("Meeting Date"), ev.Text("Meeting Time")) {
				return
			}
			events = append(events, ev)
		})
	})
	return events
}
