package normalize

import "strings"

// keyDelim never occurs in URLs or calendar cell text.
const keyDelim = "|"

// Dedup tracks composite keys seen within one crawl run. A run owns exactly
// one instance and uses it across every paginated fetch of the run; it is
// not safe for concurrent use.
type Dedup struct {
	seen map[string]struct{}
}

func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]struct{})}
}

// Seen joins the key parts, records the composite key, and reports whether
// it had been recorded before.
func (d *Dedup) Seen(parts ...string) bool {
	key := strings.Join(parts, keyDelim)
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}
