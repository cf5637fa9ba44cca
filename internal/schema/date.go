package schema

import (
	"fmt"
	"strings"
	"time"
)

// Accepted date layouts, tried in order. Layouts without a zone parse as UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate parses an ISO-8601 date or RFC 3339 timestamp. A bare date is
// midnight UTC. Locale-dependent formats such as "05/01/2023" are rejected.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
}

// dateInput is the string-or-date variant accepted by date fields before
// coercion to time.Time.
type dateInput struct {
	text   string
	date   time.Time
	isDate bool
}

func toDateInput(v any) (dateInput, bool) {
	switch t := v.(type) {
	case string:
		return dateInput{text: t}, true
	case time.Time:
		return dateInput{date: t, isDate: true}, true
	case *time.Time:
		if t == nil {
			return dateInput{}, false
		}
		return dateInput{date: *t, isDate: true}, true
	}
	return dateInput{}, false
}

func (d dateInput) resolve() (time.Time, error) {
	if d.isDate {
		return d.date, nil
	}
	return ParseDate(d.text)
}
