package ingest

import (
	"strings"
	"time"
)

// DefaultZone is the fixed geographic zone that defines a service-local
// calendar day. Day and week bucketing use this zone, never UTC
// midnight, so late-evening records stay on the day they happened.
const DefaultZone = "America/Los_Angeles"

// DateNormalizer parses the three accepted date literal families into
// one canonical UTC instant. Formats are tried in a fixed priority
// order; date-only formats are interpreted at local noon to avoid
// timezone-boundary drift.
type DateNormalizer struct {
	loc *time.Location
}

// NewDateNormalizer creates a normalizer for the given service zone.
func NewDateNormalizer(loc *time.Location) *DateNormalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &DateNormalizer{loc: loc}
}

// LoadDateNormalizer resolves a zone by name, falling back to
// DefaultZone semantics via time.LoadLocation.
func LoadDateNormalizer(zone string) (*DateNormalizer, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return NewDateNormalizer(loc), nil
}

// Location returns the service zone.
func (n *DateNormalizer) Location() *time.Location { return n.loc }

// Normalize parses raw date text. It returns the canonical UTC instant
// and true on success; when no interpretation accepts the text it
// returns false and the row is excluded from further processing.
func (n *DateNormalizer) Normalize(raw string) (time.Time, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, false
	}

	// 1. YYYY-MM-DD at local noon.
	if t, err := time.ParseInLocation("2006-01-02", text, n.loc); err == nil {
		return atNoon(t, n.loc).UTC(), true
	}

	// 2. M/D/YYYY (zero-padding optional) at local noon.
	if t, err := time.ParseInLocation("1/2/2006", text, n.loc); err == nil {
		return atNoon(t, n.loc).UTC(), true
	}

	// 3. M/D/YYYY H:MM:SS AM|PM at the literal stated time.
	if t, err := time.ParseInLocation("1/2/2006 3:04:05 PM", text, n.loc); err == nil {
		return t.UTC(), true
	}

	// Last resort: generic instant parsing.
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, text, n.loc); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// ServiceDay returns the calendar day an instant falls on in the
// service zone, at midnight of that zone, for day/week bucketing.
func (n *DateNormalizer) ServiceDay(t time.Time) time.Time {
	local := t.In(n.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, n.loc)
}

// EndOfDay returns the last nanosecond of the service-local day the
// given instant falls on, used as the inclusive upper bound of a
// caller-supplied date-range filter.
func (n *DateNormalizer) EndOfDay(t time.Time) time.Time {
	day := n.ServiceDay(t)
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func atNoon(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc)
}
