package model

const agencySuffix = " - Unified Government of Wyandotte County and Kansas City"

const (
	wycokckAPI    = "https://wycokck.api.civicclerk.com"
	wycokckPortal = "https://wycokck.portal.civicclerk.com"
)

var wycokckLocation = Location{
	Name:    "Unified Government of Wyandotte County/Kansas City",
	Address: "701 N 7th Street, Kansas City, KS 66101",
}

func wycokckSource(name, agency string, categoryIDs []int) SourceInfo {
	return SourceInfo{
		Name:            name,
		Agency:          agency + agencySuffix,
		Type:            TypeCivicClerk,
		Timezone:        "America/Chicago",
		Enabled:         true,
		DefaultLocation: wycokckLocation,
		CivicClerk: &CivicClerkConfig{
			APIBaseURL:    wycokckAPI,
			PortalBaseURL: wycokckPortal,
			CategoryIDs:   categoryIDs,
			// First meeting in the CivicClerk API: 2015-05-04.
			StartDate:   "2015-05-01",
			MonthsAhead: 3,
		},
	}
}

// DefaultSources is the explicit list of integrations seeded into the
// sources collection on startup. Operators can disable or tweak individual
// entries in the database afterwards.
func DefaultSources() []SourceInfo {
	return []SourceInfo{
		{
			Name:     "kancit_missouricity",
			Agency:   "City of Kansas City Missouri",
			Type:     TypeLegistar,
			Timezone: "America/Chicago",
			Enabled:  true,
			Legistar: &LegistarConfig{
				CalendarURL: "https://clerk.kcmo.gov/Calendar.aspx",
				StartYear:   2020,
				AllTables:   true,
			},
		},
		wycokckSource("kancit_board_commissioners", "Board of Commissioners", []int{31, 33, 35, 36, 37}),
		wycokckSource("kancit_zoning_planning", "Zoning and Planning", []int{32}),
		wycokckSource("kancit_neighborhood_dev", "Neighborhood & Community Development Standing Committee", []int{27}),
		wycokckSource("kancit_economic_dev", "Economic Development & Finance Standing Committee", []int{28}),
		wycokckSource("kancit_public_works", "Public Works & Safety Standing Committee", []int{29}),
		wycokckSource("kancit_admin_human_services", "Administration & Human Services Standing Committee", []int{30}),
		wycokckSource("kancit_task_force", "Committee/Task Force", []int{34}),
		{
			Name:     "kancit_kckps_boe",
			Agency:   "Kansas City Kansas Public Schools Board of Education",
			Type:     TypeHighbond,
			Timezone: "America/Chicago",
			Enabled:  true,
			Highbond: &HighbondConfig{
				BaseURL:   "https://kckps.community.highbond.com",
				StartDate: "2014-07-01",
			},
		},
	}
}
