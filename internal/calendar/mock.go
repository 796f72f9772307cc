package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/feestindetent/booking-backend/internal/models"
)

// MockService stands in when no calendar credential is configured, for
// local development and demos. Availability fails open: nothing is ever
// blocked, and inserts return a synthetic event id.
type MockService struct{}

func NewMock() *MockService {
	return &MockService{}
}

func (m *MockService) BookedDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	return nil, nil
}

func (m *MockService) InsertBooking(ctx context.Context, b *models.Booking) (string, error) {
	return fmt.Sprintf("mock-event-%x", time.Now().UnixNano()), nil
}

func (m *MockService) ApproveEvent(ctx context.Context, eventID string) error {
	return nil
}
