package spider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"city-fetch/internal/city_fetch/model"
	"city-fetch/internal/city_fetch/normalize"
)

// EmitFunc receives each canonical meeting as it is produced.
type EmitFunc func(model.Meeting)

// Spider crawls one configured portal. Records are emitted lazily while
// pages are consumed; a fetch failure for one page yields no records for
// that page without aborting the run.
type Spider interface {
	Name() string
	Crawl(ctx context.Context, emit EmitFunc) error
}

const defaultTimezone = "America/Chicago"

// NewFromConfig builds the spider for a source config. Configuration
// problems are construction-time errors naming every missing field; a
// misconfigured source never runs.
func NewFromConfig(cfg model.SourceInfo, client *resty.Client, log *zap.Logger) (Spider, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	tz := cfg.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("source %q: invalid timezone %q: %w", cfg.Name, tz, err)
	}

	b := base{
		cfg:    cfg,
		client: client,
		log:    log.With(zap.String("source", cfg.Name)),
		loc:    loc,
		now:    time.Now,
	}

	switch cfg.Type {
	case model.TypeLegistar:
		return &legistarSpider{base: b}, nil
	case model.TypeCivicClerk:
		return &civicClerkSpider{base: b}, nil
	case model.TypeHighbond:
		return &highbondSpider{base: b}, nil
	}
	return nil, fmt.Errorf("source %q: unknown type %q", cfg.Name, cfg.Type)
}

func validate(cfg model.SourceInfo) error {
	var missing []string
	if cfg.Name == "" {
		missing = append(missing, "name")
	}
	if cfg.Agency == "" {
		missing = append(missing, "agency")
	}

	switch cfg.Type {
	case model.TypeLegistar:
		if cfg.Legistar == nil {
			missing = append(missing, "legistar")
			break
		}
		if cfg.Legistar.CalendarURL == "" {
			missing = append(missing, "legistar.calendar_url")
		}
		if cfg.Legistar.StartYear == 0 {
			missing = append(missing, "legistar.start_year")
		}
	case model.TypeCivicClerk:
		if cfg.CivicClerk == nil {
			missing = append(missing, "civicclerk")
			break
		}
		if cfg.CivicClerk.APIBaseURL == "" {
			missing = append(missing, "civicclerk.api_base_url")
		}
		if cfg.CivicClerk.PortalBaseURL == "" {
			missing = append(missing, "civicclerk.portal_base_url")
		}
		if len(cfg.CivicClerk.CategoryIDs) == 0 {
			missing = append(missing, "civicclerk.category_ids")
		}
	case model.TypeHighbond:
		if cfg.Highbond == nil {
			missing = append(missing, "highbond")
			break
		}
		if cfg.Highbond.BaseURL == "" {
			missing = append(missing, "highbond.base_url")
		}
	case "":
		missing = append(missing, "type")
	}

	if len(missing) > 0 {
		return fmt.Errorf("source %q: missing required config: %s", cfg.Name, strings.Join(missing, ", "))
	}
	return nil
}

type base struct {
	cfg    model.SourceInfo
	client *resty.Client
	log    *zap.Logger
	loc    *time.Location
	now    func() time.Time // overridable in tests
}

func (b *base) Name() string { return b.cfg.Name }

// classify applies the source's static override when configured, otherwise
// infers from the title.
func (b *base) classify(title string) string {
	if b.cfg.Classification != "" {
		return b.cfg.Classification
	}
	return normalize.Classify(title)
}

// finalize derives status and id and emits the record, dropping meetings
// that ended up without a start time.
func (b *base) finalize(m *model.Meeting, emit EmitFunc) {
	if !normalize.Finalize(m, b.cfg.Name, b.now().In(b.loc)) {
		b.log.Debug("Dropping meeting without start time", zap.String("title", m.Title))
		return
	}
	emit(*m)
}
