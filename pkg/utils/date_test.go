package utils

import (
	"testing"
	"time"
)

func TestFormatDateNL(t *testing.T) {
	d := time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)
	if got := FormatDateNL(d); got != "14 juni 2026" {
		t.Fatalf("expected %q, got %q", "14 juni 2026", got)
	}

	d = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatDateNL(d); got != "1 januari 2026" {
		t.Fatalf("expected %q, got %q", "1 januari 2026", got)
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2026-07-21")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := parsed.Format(DateLayout); got != "2026-07-21" {
		t.Fatalf("round trip mismatch: %q", got)
	}

	if _, err := ParseDate("21/07/2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	stamped := time.Date(2026, time.August, 3, 18, 45, 12, 0, loc)

	got := DateOnly(stamped)
	want := time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
