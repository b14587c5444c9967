package model

// Source types understood by the spider factory.
const (
	TypeLegistar   = "legistar"
	TypeCivicClerk = "civicclerk"
	TypeHighbond   = "highbond"
)

// SourceInfo configures one portal integration. Sources live in the
// "sources" collection; the scheduler runs every enabled one each tick.
type SourceInfo struct {
	Name     string `bson:"_id" json:"name"` // spider slug, e.g. "kancit_board_commissioners"
	Agency   string `bson:"agency" json:"agency"`
	Type     string `bson:"type" json:"type"`
	Timezone string `bson:"timezone" json:"timezone"`
	Enabled  bool   `bson:"enabled" json:"enabled"`

	// Static classification override; empty means infer from the title.
	Classification string `bson:"classification,omitempty" json:"classification,omitempty"`

	// Fallback location used when the portal supplies none, or when the
	// location text carries no recognizable street address.
	DefaultLocation Location `bson:"default_location,omitempty" json:"default_location,omitempty"`

	Legistar   *LegistarConfig   `bson:"legistar,omitempty" json:"legistar,omitempty"`
	CivicClerk *CivicClerkConfig `bson:"civicclerk,omitempty" json:"civicclerk,omitempty"`
	Highbond   *HighbondConfig   `bson:"highbond,omitempty" json:"highbond,omitempty"`
}

// LegistarConfig drives the ASP.NET calendar scraper.
type LegistarConfig struct {
	CalendarURL string `bson:"calendar_url" json:"calendar_url"`
	// First year requested through the year postback. The last year is
	// discovered from the page's year dropdown at crawl start.
	StartYear int `bson:"start_year" json:"start_year"`
	// Exact meeting name to keep; empty keeps every meeting.
	AgencyFilter string `bson:"agency_filter,omitempty" json:"agency_filter,omitempty"`
	// Parse every rgMasterTable (including the upcoming-meetings grid and
	// the initial page) instead of only the calendar table.
	AllTables bool `bson:"all_tables,omitempty" json:"all_tables,omitempty"`
}

// CivicClerkConfig drives the CivicClerk events API scraper.
type CivicClerkConfig struct {
	APIBaseURL    string `bson:"api_base_url" json:"api_base_url"`
	PortalBaseURL string `bson:"portal_base_url" json:"portal_base_url"`
	CategoryIDs   []int  `bson:"category_ids" json:"category_ids"`
	// ISO date floor for past events, e.g. "2015-05-01".
	StartDate   string `bson:"start_date" json:"start_date"`
	MonthsAhead int    `bson:"months_ahead" json:"months_ahead"`
}

// HighbondConfig drives the Highbond meetings service scraper.
type HighbondConfig struct {
	BaseURL string `bson:"base_url" json:"base_url"`
	// ISO date floor for the meetings query, e.g. "2014-07-01".
	StartDate string `bson:"start_date" json:"start_date"`
}
