package timex

import (
	"strings"
	"time"
)

// layouts covers what spreadsheet exports and browser clients typically
// write into date columns.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseLoose tries a fixed list of layouts and reports whether any matched.
// It never returns an error: an unparseable value is simply absent.
func ParseLoose(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// "Mon Jan 02 2006 15:04:05 GMT+0530 (India Standard Time)"
	if i := strings.Index(s, " ("); i > 0 {
		s = s[:i]
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
