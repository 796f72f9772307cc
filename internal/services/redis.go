package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client. Redis is optional: every helper
// in this file degrades to a no-op when the client is nil, so a missing
// Redis only costs the caching and the race protection, never the booking
// flow itself.
func InitRedis(redisURL string) error {
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

const (
	// availabilityTTL matches the Cache-Control max-age on the
	// availability endpoint.
	availabilityTTL = time.Hour
	// lastKnownTTL keeps a stale copy around so availability can serve
	// the last successful result while the calendar backend is down.
	lastKnownTTL = 72 * time.Hour
	// reservationTTL bounds how long a submission may hold a date between
	// the availability check and the calendar insert.
	reservationTTL = 2 * time.Minute
)

func availabilityKey(year int, month time.Month) string {
	return fmt.Sprintf("availability:%04d-%02d", year, int(month))
}

func lastKnownKey(year int, month time.Month) string {
	return fmt.Sprintf("availability:last:%04d-%02d", year, int(month))
}

func reservationKey(date time.Time) string {
	return "booking:hold:" + date.Format("2006-01-02")
}

// CacheBookedDates stores a month's booked dates, both as the fresh cache
// entry and as the last-known-good fallback.
func CacheBookedDates(ctx context.Context, year int, month time.Month, dates []string) error {
	if RedisClient == nil {
		return nil
	}

	data, err := json.Marshal(dates)
	if err != nil {
		return err
	}

	if err := RedisClient.Set(ctx, availabilityKey(year, month), data, availabilityTTL).Err(); err != nil {
		return err
	}
	return RedisClient.Set(ctx, lastKnownKey(year, month), data, lastKnownTTL).Err()
}

// GetCachedBookedDates returns the fresh cache entry for a month, if any.
func GetCachedBookedDates(ctx context.Context, year int, month time.Month) ([]string, bool) {
	return getDates(ctx, availabilityKey(year, month))
}

// GetLastKnownBookedDates returns the stale fallback copy for a month.
func GetLastKnownBookedDates(ctx context.Context, year int, month time.Month) ([]string, bool) {
	return getDates(ctx, lastKnownKey(year, month))
}

func getDates(ctx context.Context, key string) ([]string, bool) {
	if RedisClient == nil {
		return nil, false
	}

	data, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var dates []string
	if err := json.Unmarshal([]byte(data), &dates); err != nil {
		return nil, false
	}
	return dates, true
}

// InvalidateAvailability drops the fresh cache entries for the months the
// given dates fall in, so a new booking shows up without waiting out the
// cache TTL.
func InvalidateAvailability(ctx context.Context, dates []time.Time) {
	if RedisClient == nil {
		return
	}

	seen := make(map[string]struct{})
	for _, d := range dates {
		key := availabilityKey(d.Year(), d.Month())
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		RedisClient.Del(ctx, key)
	}
}

// ReserveDates takes a short-lived hold on each date of a booking's block,
// closing the window between the availability check and the calendar
// insert. Returns false if any date is already held by another submission.
// A Redis error makes the hold advisory: the caller proceeds and the
// returned error is only worth a log line.
func ReserveDates(ctx context.Context, dates []time.Time) (bool, error) {
	if RedisClient == nil {
		return true, nil
	}

	var acquired []time.Time
	for _, d := range dates {
		ok, err := RedisClient.SetNX(ctx, reservationKey(d), "1", reservationTTL).Result()
		if err != nil {
			ReleaseDates(ctx, acquired)
			return true, err
		}
		if !ok {
			ReleaseDates(ctx, acquired)
			return false, nil
		}
		acquired = append(acquired, d)
	}
	return true, nil
}

// ReleaseDates frees holds taken by ReserveDates after a failed
// submission. Successful submissions let the holds expire on their own;
// by then the calendar event itself blocks the dates.
func ReleaseDates(ctx context.Context, dates []time.Time) {
	if RedisClient == nil {
		return
	}

	for _, d := range dates {
		RedisClient.Del(ctx, reservationKey(d))
	}
}
