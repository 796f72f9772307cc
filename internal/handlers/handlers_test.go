package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/feestindetent/booking-backend/internal/config"
	"github.com/feestindetent/booking-backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeCalendar implements calendar.Service and records what the handlers
// asked of it.
type fakeCalendar struct {
	booked     []time.Time
	bookedErr  error
	insertID   string
	insertErr  error
	inserted   []*models.Booking
	approved   []string
	approveErr error
}

func (f *fakeCalendar) BookedDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	if f.bookedErr != nil {
		return nil, f.bookedErr
	}
	var out []time.Time
	for _, d := range f.booked {
		if !d.Before(from) && d.Before(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeCalendar) InsertBooking(ctx context.Context, b *models.Booking) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = append(f.inserted, b)
	if f.insertID == "" {
		return "evt-test", nil
	}
	return f.insertID, nil
}

func (f *fakeCalendar) ApproveEvent(ctx context.Context, eventID string) error {
	if f.approveErr != nil {
		return f.approveErr
	}
	f.approved = append(f.approved, eventID)
	return nil
}

// fakeMailer counts outgoing mail instead of sending it.
type fakeMailer struct {
	notifications []string // approval tokens
	confirmations []string // customer emails
	failNotify    bool
}

func (f *fakeMailer) SendBookingNotification(businessEmail string, b *models.Booking, approvalToken string) error {
	if f.failNotify {
		return errTest
	}
	f.notifications = append(f.notifications, approvalToken)
	return nil
}

func (f *fakeMailer) SendApprovalConfirmation(b *models.Booking) error {
	f.confirmations = append(f.confirmations, b.CustomerEmail)
	return nil
}

var errTest = errors.New("smtp unavailable")

// newTestDB returns a gorm handle that builds SQL without executing it,
// enough for handler-level tests that assert on flow, not persistence.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:       "http://localhost:8080",
		BusinessEmail: "feestindetentverhuur@gmail.com",
		JWTSecret:     "test-secret",
		OriginLat:     50.9848,
		OriginLng:     4.8373,
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
