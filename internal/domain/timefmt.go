package domain

import (
	"fmt"
	"strings"
	"time"
)

// DisplayLayout is used by the list formatters.
const DisplayLayout = "2006-01-02 15:04"

// Accepted ISO-8601 forms, most specific first. Fractional seconds are
// accepted by the seconds layouts without being spelled out.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
}

// ParseISO parses the date-time forms chat clients send: date only, minutes,
// seconds, fractional seconds, optional offset, with either 'T' or a space
// between date and time. Values without an offset are returned in UTC and
// treated as naive.
func ParseISO(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if len(v) > 10 && v[10] == ' ' {
		v = v[:10] + "T" + v[11:]
	}
	// The hour layout accepts a single digit; ISO-8601 does not.
	if len(v) > 10 && !twoDigits(v[11:]) {
		return time.Time{}, fmt.Errorf("not an ISO-8601 date-time: %q", s)
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 date-time: %q", s)
}

func twoDigits(s string) bool {
	return len(s) >= 2 && isDigit(s[0]) && isDigit(s[1])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// FormatISO renders t the way it is stored in the sheet. Naive (UTC) values
// carry no offset; microseconds are written only when non-zero.
func FormatISO(t time.Time) string {
	layout := "2006-01-02T15:04:05"
	if t.Nanosecond() != 0 {
		layout += ".000000"
	}
	if t.Location() != time.UTC {
		layout += "-07:00"
	}
	return t.Format(layout)
}
