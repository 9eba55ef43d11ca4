// Package temporal turns the zone-less date and time text of exported records
// into absolute instants.
package temporal

import (
	"strings"
	"time"
)

var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
}

// Resolver interprets wall-clock text in one fixed household zone.
type Resolver struct {
	loc *time.Location
}

// NewResolver returns a Resolver for loc. A nil loc means UTC.
func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc}
}

// Location returns the household zone.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Resolve combines date and clock into a UTC instant. The second result is
// false when the text cannot be read; Resolve never fails otherwise.
// A date with an empty clock resolves to local midnight.
func (r *Resolver) Resolve(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, false
	}

	if clock == "" {
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, date, r.loc); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	}

	value := date + " " + clock
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, r.loc); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ResolvePtr is Resolve returning nil for an unreadable value.
func (r *Resolver) ResolvePtr(date, clock string) *time.Time {
	t, ok := r.Resolve(date, clock)
	if !ok {
		return nil
	}
	return &t
}

// MonthKey formats t as "YYYY-MM" in the household zone.
func (r *Resolver) MonthKey(t time.Time) string {
	return t.In(r.loc).Format("2006-01")
}

// MonthStart returns the first instant of the household-zone month holding t.
func (r *Resolver) MonthStart(t time.Time) time.Time {
	local := t.In(r.loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, r.loc)
}

// ParseMonthKey parses "YYYY-MM" into the first instant of that month in the
// household zone.
func (r *Resolver) ParseMonthKey(key string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(key), r.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
