package calendar

import (
	"context"
	"log"
	"time"

	"github.com/feestindetent/booking-backend/internal/config"
	"github.com/feestindetent/booking-backend/internal/models"
)

// Service is the calendar backend the booking flow talks to. Google
// Calendar is the system of record for reservations; this interface is the
// seam that lets handlers run against a fake in tests and against the mock
// implementation when no credential is configured.
type Service interface {
	// BookedDates returns the distinct dates blocked within [from, to),
	// ascending, normalized to midnight UTC. Multi-day blocks contribute
	// every date they span.
	BookedDates(ctx context.Context, from, to time.Time) ([]time.Time, error)

	// InsertBooking creates the all-day event reserving the booking's
	// window and returns the new event's id. No conflict check happens
	// here; callers decide whether the window is free first.
	InsertBooking(ctx context.Context, b *models.Booking) (string, error)

	// ApproveEvent moves an event from the to-approve calendar to the
	// approved calendar.
	ApproveEvent(ctx context.Context, eventID string) error
}

// New builds the calendar service from the configured credentials. An
// absent or unusable credential degrades to the mock service so the
// booking flow keeps working with availability failing open.
func New(ctx context.Context, creds config.GoogleCredentials) Service {
	if !creds.Configured() {
		log.Println("Warning: Google Calendar credentials not configured. Running with mock calendar; no dates will be blocked.")
		return NewMock()
	}

	svc, err := NewGoogleService(ctx, creds)
	if err != nil {
		log.Printf("Warning: calendar client initialization failed (%v); falling back to mock calendar", err)
		return NewMock()
	}
	return svc
}

// MonthRange returns the [start, end) bounds of a month in UTC.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
