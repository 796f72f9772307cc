package services

import (
	"context"
	"testing"
	"time"
)

// The booking flow must keep working when Redis was never initialized.
func TestRedisHelpersWithoutClient(t *testing.T) {
	RedisClient = nil
	ctx := context.Background()
	dates := []time.Time{time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)}

	if err := CacheBookedDates(ctx, 2026, time.July, []string{"2026-07-10"}); err != nil {
		t.Fatalf("cache write must no-op, got %v", err)
	}
	if _, ok := GetCachedBookedDates(ctx, 2026, time.July); ok {
		t.Fatal("no cache hit possible without a client")
	}
	if _, ok := GetLastKnownBookedDates(ctx, 2026, time.July); ok {
		t.Fatal("no fallback hit possible without a client")
	}

	held, err := ReserveDates(ctx, dates)
	if err != nil {
		t.Fatalf("reservation must no-op, got %v", err)
	}
	if !held {
		t.Fatal("without Redis the hold is advisory and must succeed")
	}

	// Must not panic.
	InvalidateAvailability(ctx, dates)
	ReleaseDates(ctx, dates)
}

func TestInitRedisRejectsBadURL(t *testing.T) {
	RedisClient = nil
	if err := InitRedis("not a url"); err == nil {
		t.Fatal("expected an error for an unparsable URL")
	}
}
