package model

import "time"

// Classification values form a closed set; Classify picks one by keyword
// precedence unless a source pins a static value.
const (
	CityCouncil   = "City Council"
	Committee     = "Committee"
	Commission    = "Commission"
	Board         = "Board"
	NotClassified = "Not classified"
)

// Status values derived from the meeting title and start time.
const (
	StatusCancelled = "cancelled"
	StatusPassed    = "passed"
	StatusTentative = "tentative"
)

type Location struct {
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address" json:"address"`
}

type Link struct {
	Href  string `bson:"href" json:"href"`
	Title string `bson:"title" json:"title"`
}

// Meeting is the canonical record emitted by every spider and upserted into
// the meetings collection. ID is deterministic over (spider, start, title),
// so re-crawling identical input overwrites the same document.
type Meeting struct {
	ID             string     `bson:"_id" json:"id"`
	Title          string     `bson:"title" json:"title"`
	Description    string     `bson:"description" json:"description"`
	Classification string     `bson:"classification" json:"classification"`
	Start          time.Time  `bson:"start" json:"start"`
	End            *time.Time `bson:"end,omitempty" json:"end,omitempty"`
	AllDay         bool       `bson:"all_day" json:"all_day"`
	TimeNotes      string     `bson:"time_notes" json:"time_notes"`
	Location       Location   `bson:"location" json:"location"`
	Links          []Link     `bson:"links" json:"links"`
	Source         string     `bson:"source" json:"source"`
	Status         string     `bson:"status" json:"status"`
	Spider         string     `bson:"spider" json:"spider"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updated_at"`
}
