package ingest

import (
	"testing"
	"time"
)

// fixedZone avoids depending on the host's tz database in tests.
var fixedZone = time.FixedZone("TEST-8", -8*60*60)

func TestNormalizeISODateAtNoon(t *testing.T) {
	n := NewDateNormalizer(fixedZone)

	got, ok := n.Normalize("2025-01-15")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2025, 1, 15, 12, 0, 0, 0, fixedZone).UTC()
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Error("canonical instant should be UTC-normalized")
	}
}

func TestNormalizeSlashDateAtNoon(t *testing.T) {
	n := NewDateNormalizer(fixedZone)

	for _, raw := range []string{"1/15/2025", "01/15/2025"} {
		got, ok := n.Normalize(raw)
		if !ok {
			t.Fatalf("Normalize(%q) failed", raw)
		}
		want := time.Date(2025, 1, 15, 12, 0, 0, 0, fixedZone).UTC()
		if !got.Equal(want) {
			t.Errorf("Normalize(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNormalizeDateTimeLiteral(t *testing.T) {
	n := NewDateNormalizer(fixedZone)

	got, ok := n.Normalize("1/15/2025 9:30:00 PM")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2025, 1, 15, 21, 30, 0, 0, fixedZone).UTC()
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNormalizeGenericFallback(t *testing.T) {
	n := NewDateNormalizer(fixedZone)

	if _, ok := n.Normalize("2025-01-15T10:00:00Z"); !ok {
		t.Error("RFC3339 should parse via the generic fallback")
	}
}

func TestNormalizeRejects(t *testing.T) {
	n := NewDateNormalizer(fixedZone)

	for _, raw := range []string{"", "  ", "not-a-date", "13/45/2025", "2025-15-99"} {
		if _, ok := n.Normalize(raw); ok {
			t.Errorf("Normalize(%q) should fail", raw)
		}
	}
}

func TestServiceDayBucketing(t *testing.T) {
	n := NewDateNormalizer(fixedZone)

	// 3 AM UTC on the 16th is still the evening of the 15th in the
	// service zone; the service day must reflect that.
	instant := time.Date(2025, 1, 16, 3, 0, 0, 0, time.UTC)
	day := n.ServiceDay(instant)
	if day.Day() != 15 || day.Hour() != 0 {
		t.Errorf("ServiceDay = %v, want local midnight of the 15th", day)
	}
}

func TestEndOfDay(t *testing.T) {
	n := NewDateNormalizer(fixedZone)

	instant := time.Date(2025, 1, 15, 12, 0, 0, 0, fixedZone)
	end := n.EndOfDay(instant)
	next := time.Date(2025, 1, 16, 0, 0, 0, 0, fixedZone)
	if !end.Before(next) || next.Sub(end) != time.Nanosecond {
		t.Errorf("EndOfDay = %v, want last nanosecond before %v", end, next)
	}
}
