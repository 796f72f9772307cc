package calendar

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/feestindetent/booking-backend/internal/config"
	"github.com/feestindetent/booking-backend/internal/models"
	"github.com/feestindetent/booking-backend/pkg/utils"
)

// GoogleService talks to the Google Calendar API with a service-account
// credential. Bookings awaiting review live on the to-approve calendar;
// approval moves them to the approved calendar.
type GoogleService struct {
	svc       *gcal.Service
	toApprove string
	approved  string
}

// NewGoogleService authenticates with the service-account JWT flow, the
// same way the original deployment did.
func NewGoogleService(ctx context.Context, creds config.GoogleCredentials) (*GoogleService, error) {
	conf := &jwt.Config{
		Email:      creds.ClientEmail,
		PrivateKey: []byte(creds.PrivateKey),
		Scopes:     []string{gcal.CalendarScope},
		TokenURL:   google.JWTTokenURL,
	}

	return newGoogleService(ctx, creds, option.WithTokenSource(conf.TokenSource(ctx)))
}

func newGoogleService(ctx context.Context, creds config.GoogleCredentials, opts ...option.ClientOption) (*GoogleService, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	return &GoogleService{
		svc:       svc,
		toApprove: creds.ToApproveCalendar,
		approved:  creds.ApprovedCalendar,
	}, nil
}

// BookedDates lists events overlapping [from, to) on both calendars and
// collects every date they block.
func (g *GoogleService) BookedDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	seen := make(map[time.Time]struct{})

	for _, calendarID := range []string{g.toApprove, g.approved} {
		if calendarID == "" {
			continue
		}

		call := g.svc.Events.List(calendarID).
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime")

		err := call.Pages(ctx, func(page *gcal.Events) error {
			for _, ev := range page.Items {
				for _, d := range eventDates(ev) {
					if !d.Before(from) && d.Before(to) {
						seen[d] = struct{}{}
					}
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list events for %s: %w", calendarID, err)
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// eventDates expands an event into the dates it blocks. All-day events use
// their exclusive end date; timestamped events block every date they touch.
func eventDates(ev *gcal.Event) []time.Time {
	if ev.Start == nil {
		return nil
	}

	if ev.Start.Date != "" {
		start, err := utils.ParseDate(ev.Start.Date)
		if err != nil {
			return nil
		}
		end := start.AddDate(0, 0, 1)
		if ev.End != nil && ev.End.Date != "" {
			if e, err := utils.ParseDate(ev.End.Date); err == nil && e.After(start) {
				end = e
			}
		}
		var dates []time.Time
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
		return dates
	}

	start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		return nil
	}
	last := utils.DateOnly(start)
	if ev.End != nil && ev.End.DateTime != "" {
		if e, err := time.Parse(time.RFC3339, ev.End.DateTime); err == nil && e.After(start) {
			last = utils.DateOnly(e.Add(-time.Second))
		}
	}

	var dates []time.Time
	for d := utils.DateOnly(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// InsertBooking creates the all-day event spanning the booking's block on
// the to-approve calendar.
func (g *GoogleService) InsertBooking(ctx context.Context, b *models.Booking) (string, error) {
	start := utils.DateOnly(b.DeliveryDate)
	end := start.AddDate(0, 0, models.BlockDays)

	event := &gcal.Event{
		Summary:     EventSummary(b),
		Location:    b.Address.FullAddress(),
		Description: EventDescription(b),
		Start:       &gcal.EventDateTime{Date: start.Format(utils.DateLayout)},
		End:         &gcal.EventDateTime{Date: end.Format(utils.DateLayout)},
	}

	created, err := g.svc.Events.Insert(g.toApprove, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return created.Id, nil
}

// ApproveEvent moves the event to the approved calendar. Setups without a
// separate approved calendar keep the event where it is.
func (g *GoogleService) ApproveEvent(ctx context.Context, eventID string) error {
	if g.approved == "" {
		return nil
	}

	_, err := g.svc.Events.Move(g.toApprove, eventID, g.approved).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to move event %s: %w", eventID, err)
	}
	return nil
}

// EventSummary renders the one-line title the business sees on the
// calendar: address, name, email.
func EventSummary(b *models.Booking) string {
	addrLine := strings.TrimSpace(b.Address.Street + " " + b.Address.HouseNumber)
	return fmt.Sprintf("%s - %s - %s", addrLine, b.CustomerName, b.CustomerEmail)
}

// EventDescription renders the full booking details block stored on the
// calendar event.
func EventDescription(b *models.Booking) string {
	comments := b.Comments
	if comments == "" {
		comments = "Geen"
	}

	lines := []string{
		fmt.Sprintf("Tenttype: %s", b.TentType),
		fmt.Sprintf("Datum: %s", utils.FormatDateNL(b.DeliveryDate)),
		fmt.Sprintf("Tijd: %s", b.DeliveryTime),
		fmt.Sprintf("Adres: %s", b.Address.FullAddress()),
		fmt.Sprintf("Naam: %s", b.CustomerName),
		fmt.Sprintf("Email: %s", b.CustomerEmail),
		fmt.Sprintf("Telefoon: %s", b.CustomerPhone),
		fmt.Sprintf("Opmerkingen: %s", comments),
		fmt.Sprintf("Basisprijs: €%.2f", b.BasePrice),
		fmt.Sprintf("Leveringskost: €%.2f", b.DeliveryCost),
		fmt.Sprintf("Totaalprijs: €%.2f", b.Total),
		fmt.Sprintf("Status: %s", b.Status),
	}
	return strings.Join(lines, "\n")
}
