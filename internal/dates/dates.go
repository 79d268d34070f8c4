// Package dates normalizes loosely-formatted date input into the canonical
// "2006-01-02" form used everywhere in the store. Malformed input degrades
// to the empty string ("unset") rather than blocking a write — the form
// layer resubmits whatever the user last typed, and a bad date must never
// make a save fail.
package dates

import (
	"strings"
	"time"
)

// layouts are tried in order. The list covers the canonical form, common
// slash/dot variants, RFC 3339 timestamps (exports carry these), and a few
// human spellings seen in real form input.
var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// Normalize parses s into a canonical "2006-01-02" calendar-date string.
// Empty or unparseable input returns "".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
