package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/feestindetent/booking-backend/pkg/utils"
)

func approvalRouter(t *testing.T, cal *fakeCalendar, mailer *fakeMailer) *gin.Engine {
	r := gin.New()
	r.GET("/api/bookings/approve", ApproveBooking(newTestDB(t), cal, mailer, testConfig()))
	return r
}

func approvalToken(t *testing.T, eventID string) string {
	t.Helper()
	token, err := utils.GenerateApprovalToken(eventID, "an@example.be", []byte(testConfig().JWTSecret))
	if err != nil {
		t.Fatalf("sign approval token: %v", err)
	}
	return token
}

func TestApproveBookingMissingToken(t *testing.T) {
	cal := &fakeCalendar{}
	r := approvalRouter(t, cal, &fakeMailer{})

	w := doJSON(t, r, http.MethodGet, "/api/bookings/approve", nil)
	if w.Code != 400 {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(cal.approved) != 0 {
		t.Fatal("no calendar call may happen without a token")
	}
}

func TestApproveBookingInvalidToken(t *testing.T) {
	cal := &fakeCalendar{}
	r := approvalRouter(t, cal, &fakeMailer{})

	w := doJSON(t, r, http.MethodGet, "/api/bookings/approve?token=not-a-jwt", nil)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if len(cal.approved) != 0 {
		t.Fatal("a bad token must not reach the calendar")
	}
}

func TestApproveBookingWrongTokenScope(t *testing.T) {
	// An admin session token is a valid JWT but not an approval link.
	token, err := utils.GenerateAdminToken("owner@example.be", []byte(testConfig().JWTSecret))
	if err != nil {
		t.Fatalf("sign admin token: %v", err)
	}

	r := approvalRouter(t, &fakeCalendar{}, &fakeMailer{})
	w := doJSON(t, r, http.MethodGet, "/api/bookings/approve?token="+token, nil)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestApproveBookingSuccess(t *testing.T) {
	cal := &fakeCalendar{}
	mailer := &fakeMailer{}
	r := approvalRouter(t, cal, mailer)

	token := approvalToken(t, "evt-42")
	w := doJSON(t, r, http.MethodGet, "/api/bookings/approve?token="+token, nil)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["eventId"] != "evt-42" {
		t.Fatalf("unexpected body %v", body)
	}
	if len(cal.approved) != 1 || cal.approved[0] != "evt-42" {
		t.Fatalf("expected evt-42 approved, got %v", cal.approved)
	}
	if len(mailer.confirmations) != 1 {
		t.Fatalf("expected 1 confirmation mail, got %d", len(mailer.confirmations))
	}
}

func TestApproveBookingCalendarFailure(t *testing.T) {
	cal := &fakeCalendar{approveErr: errors.New("event gone")}
	mailer := &fakeMailer{}
	r := approvalRouter(t, cal, mailer)

	token := approvalToken(t, "evt-42")
	w := doJSON(t, r, http.MethodGet, "/api/bookings/approve?token="+token, nil)
	if w.Code != 500 {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if len(mailer.confirmations) != 0 {
		t.Fatal("no confirmation may go out when the calendar move failed")
	}
}
