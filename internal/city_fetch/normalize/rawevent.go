package normalize

// FieldValue is one extracted cell: plain text, or a link with a label.
type FieldValue struct {
	Text  string `json:"text,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url,omitempty"`
}

func (v FieldValue) IsLink() bool { return v.URL != "" }

// RawEvent maps a logical field name ("Name", "Meeting Date", "Agenda") to
// its extracted value. It is built once per source row and discarded after
// conversion to a Meeting.
type RawEvent map[string]FieldValue

// Text returns the display text for a field: the link label when the field
// is a link, the plain text otherwise. Missing fields yield "".
func (e RawEvent) Text(key string) string {
	v := e[key]
	if v.IsLink() {
		return v.Label
	}
	return v.Text
}

// URL returns the field's link target, or "" when the field is absent or
// plain text.
func (e RawEvent) URL(key string) string {
	return e[key].URL
}
