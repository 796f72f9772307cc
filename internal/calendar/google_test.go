package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/feestindetent/booking-backend/internal/config"
	"github.com/feestindetent/booking-backend/internal/models"
)

// fakeBackend emulates just enough of the Calendar REST API for the
// service: list, insert and move.
type fakeBackend struct {
	mu     sync.Mutex
	events map[string][]*gcal.Event // calendar id -> events
	nextID int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{events: make(map[string][]*gcal.Event)}
}

func (f *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		// calendars/{id}/events[/{eventId}/move]
		if len(parts) < 3 || parts[0] != "calendars" || parts[2] != "events" {
			http.NotFound(w, r)
			return
		}
		calendarID := parts[1]

		switch {
		case r.Method == http.MethodGet && len(parts) == 3:
			json.NewEncoder(w).Encode(&gcal.Events{Items: f.events[calendarID]})

		case r.Method == http.MethodPost && len(parts) == 3:
			var ev gcal.Event
			if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			f.nextID++
			ev.Id = fmt.Sprintf("evt-%d", f.nextID)
			f.events[calendarID] = append(f.events[calendarID], &ev)
			json.NewEncoder(w).Encode(&ev)

		case r.Method == http.MethodPost && len(parts) == 5 && parts[4] == "move":
			eventID := parts[3]
			dest := r.URL.Query().Get("destination")
			for i, ev := range f.events[calendarID] {
				if ev.Id == eventID {
					f.events[calendarID] = append(f.events[calendarID][:i], f.events[calendarID][i+1:]...)
					f.events[dest] = append(f.events[dest], ev)
					json.NewEncoder(w).Encode(ev)
					return
				}
			}
			http.NotFound(w, r)

		default:
			http.NotFound(w, r)
		}
	})
}

func newTestService(t *testing.T) (*GoogleService, *fakeBackend) {
	t.Helper()

	backend := newFakeBackend()
	ts := httptest.NewServer(backend.handler())
	t.Cleanup(ts.Close)

	creds := config.GoogleCredentials{
		ClientEmail:       "svc@test",
		PrivateKey:        "unused",
		ToApproveCalendar: "cal-approve",
		ApprovedCalendar:  "cal-approved",
	}
	svc, err := newGoogleService(context.Background(), creds,
		option.WithEndpoint(ts.URL), option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("newGoogleService: %v", err)
	}
	return svc, backend
}

func TestBookedDatesEmptyMonth(t *testing.T) {
	svc, _ := newTestService(t)

	from, to := MonthRange(2026, time.July)
	dates, err := svc.BookedDates(context.Background(), from, to)
	if err != nil {
		t.Fatalf("BookedDates: %v", err)
	}
	if len(dates) != 0 {
		t.Fatalf("expected no booked dates, got %v", dates)
	}
}

func TestInsertThenQueryRoundTrip(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	booking := &models.Booking{
		CustomerName:  "An Peeters",
		CustomerEmail: "an@example.be",
		TentType:      "Full Option",
		DeliveryDate:  time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC),
		Address:       models.Address{Street: "Kerkstraat", HouseNumber: "12"},
		Status:        models.BookingStatusToApprove,
	}

	eventID, err := svc.InsertBooking(ctx, booking)
	if err != nil {
		t.Fatalf("InsertBooking: %v", err)
	}
	if eventID == "" {
		t.Fatal("expected an event id")
	}

	stored := backend.events["cal-approve"]
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored event, got %d", len(stored))
	}
	if stored[0].Start.Date != "2026-07-10" || stored[0].End.Date != "2026-07-12" {
		t.Fatalf("expected 2-day block 2026-07-10..2026-07-12, got %s..%s",
			stored[0].Start.Date, stored[0].End.Date)
	}

	from, to := MonthRange(2026, time.July)
	dates, err := svc.BookedDates(ctx, from, to)
	if err != nil {
		t.Fatalf("BookedDates: %v", err)
	}

	want := []string{"2026-07-10", "2026-07-11"}
	if len(dates) != len(want) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
	for i, w := range want {
		if got := dates[i].Format("2006-01-02"); got != w {
			t.Fatalf("expected %s at index %d, got %s", w, i, got)
		}
	}
}

func TestBookedDatesMergesBothCalendars(t *testing.T) {
	svc, backend := newTestService(t)

	backend.events["cal-approve"] = []*gcal.Event{{
		Id:    "a",
		Start: &gcal.EventDateTime{Date: "2026-07-03"},
		End:   &gcal.EventDateTime{Date: "2026-07-05"},
	}}
	backend.events["cal-approved"] = []*gcal.Event{{
		Id:    "b",
		Start: &gcal.EventDateTime{Date: "2026-07-04"},
		End:   &gcal.EventDateTime{Date: "2026-07-06"},
	}}

	from, to := MonthRange(2026, time.July)
	dates, err := svc.BookedDates(context.Background(), from, to)
	if err != nil {
		t.Fatalf("BookedDates: %v", err)
	}

	want := []string{"2026-07-03", "2026-07-04", "2026-07-05"}
	if len(dates) != len(want) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
	for i, w := range want {
		if got := dates[i].Format("2006-01-02"); got != w {
			t.Fatalf("expected %s at index %d, got %s", w, i, got)
		}
	}
}

func TestApproveEventMovesCalendar(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	booking := &models.Booking{
		CustomerName: "Jan",
		DeliveryDate: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
	}
	eventID, err := svc.InsertBooking(ctx, booking)
	if err != nil {
		t.Fatalf("InsertBooking: %v", err)
	}

	if err := svc.ApproveEvent(ctx, eventID); err != nil {
		t.Fatalf("ApproveEvent: %v", err)
	}

	if len(backend.events["cal-approve"]) != 0 {
		t.Fatal("event should have left the to-approve calendar")
	}
	if len(backend.events["cal-approved"]) != 1 {
		t.Fatal("event should have arrived on the approved calendar")
	}
}

func TestEventDatesTimed(t *testing.T) {
	ev := &gcal.Event{
		Start: &gcal.EventDateTime{DateTime: "2026-07-10T14:00:00+02:00"},
		End:   &gcal.EventDateTime{DateTime: "2026-07-11T10:00:00+02:00"},
	}

	dates := eventDates(ev)
	if len(dates) != 2 {
		t.Fatalf("expected the timed event to block 2 dates, got %v", dates)
	}
	if dates[0].Format("2006-01-02") != "2026-07-10" || dates[1].Format("2006-01-02") != "2026-07-11" {
		t.Fatalf("unexpected dates %v", dates)
	}
}

func TestEventDatesTimedEndsAtMidnight(t *testing.T) {
	ev := &gcal.Event{
		Start: &gcal.EventDateTime{DateTime: "2026-07-10T14:00:00Z"},
		End:   &gcal.EventDateTime{DateTime: "2026-07-11T00:00:00Z"},
	}

	dates := eventDates(ev)
	if len(dates) != 1 {
		t.Fatalf("event ending at midnight must only block its start date, got %v", dates)
	}
}

func TestEventDatesNoStart(t *testing.T) {
	if dates := eventDates(&gcal.Event{}); dates != nil {
		t.Fatalf("expected nil for event without start, got %v", dates)
	}
}

func TestEventSummaryAndDescription(t *testing.T) {
	b := &models.Booking{
		CustomerName:  "An Peeters",
		CustomerEmail: "an@example.be",
		CustomerPhone: "0470 12 34 56",
		TentType:      "Full Option",
		BasePrice:     350,
		DeliveryCost:  5.25,
		Total:         355.25,
		DeliveryDate:  time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC),
		DeliveryTime:  "12:00",
		Address:       models.Address{Street: "Kerkstraat", HouseNumber: "12", PostalCode: "3200", City: "Aarschot"},
		Status:        models.BookingStatusToApprove,
	}

	if got := EventSummary(b); got != "Kerkstraat 12 - An Peeters - an@example.be" {
		t.Fatalf("unexpected summary %q", got)
	}

	desc := EventDescription(b)
	for _, want := range []string{
		"Tenttype: Full Option",
		"Datum: 14 juni 2026",
		"Tijd: 12:00",
		"Opmerkingen: Geen",
		"Basisprijs: €350.00",
		"Leveringskost: €5.25",
		"Totaalprijs: €355.25",
		"Status: to_approve",
	} {
		if !strings.Contains(desc, want) {
			t.Fatalf("description missing %q:\n%s", want, desc)
		}
	}
}

func TestMockServiceFailsOpen(t *testing.T) {
	mock := NewMock()

	dates, err := mock.BookedDates(context.Background(), time.Now(), time.Now().AddDate(0, 1, 0))
	if err != nil || len(dates) != 0 {
		t.Fatalf("mock must never block dates, got %v (%v)", dates, err)
	}

	id, err := mock.InsertBooking(context.Background(), &models.Booking{})
	if err != nil || id == "" {
		t.Fatalf("mock insert must return a synthetic id, got %q (%v)", id, err)
	}
}
