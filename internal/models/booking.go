package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusToApprove BookingStatus = "to_approve"
	BookingStatusApproved  BookingStatus = "approved"
)

// Address is the structured delivery address as selected through the
// address autocomplete on the booking form.
type Address struct {
	Street      string  `json:"street" gorm:"not null"`
	HouseNumber string  `json:"houseNumber"`
	PostalCode  string  `json:"postalCode"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// HasCoordinates reports whether the geocoder filled in a location. A
// missing location means the delivery cost can only be estimated.
func (a Address) HasCoordinates() bool {
	return a.Latitude != 0 || a.Longitude != 0
}

// FullAddress renders "street number, postal city, country" with empty
// parts collapsed.
func (a Address) FullAddress() string {
	line := strings.TrimSpace(a.Street + " " + a.HouseNumber)
	locality := strings.TrimSpace(a.PostalCode + " " + a.City)

	parts := make([]string, 0, 3)
	for _, p := range []string{line, locality, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Booking is the persisted record of a submitted reservation. The calendar
// event remains the authoritative reservation; this row exists for the
// admin overview and is never updated except for the status flip on
// approval.
type Booking struct {
	gorm.Model
	CustomerName  string        `json:"customerName" gorm:"not null"`
	CustomerEmail string        `json:"customerEmail" gorm:"not null"`
	CustomerPhone string        `json:"customerPhone"`
	TentType      string        `json:"tentType" gorm:"not null"`
	BasePrice     float64       `json:"price" gorm:"not null"`
	DeliveryCost  float64       `json:"deliveryCost"`
	Total         float64       `json:"total" gorm:"not null"`
	DeliveryDate  time.Time     `json:"date" gorm:"not null"`
	DeliveryTime  string        `json:"time"`
	Address       Address       `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Comments      string        `json:"comments"`
	Status        BookingStatus `json:"status" gorm:"not null;default:'to_approve'"`
	EventID       string        `json:"eventId" gorm:"index"`
}

// BlockDays is the number of calendar days reserved per booking: delivery
// day plus one day of buffer before pickup. The calendar event spans
// [DeliveryDate, DeliveryDate+BlockDays) as an all-day range.
const BlockDays = 2

// BlockedDates returns every date the booking occupies on the calendar.
func (b *Booking) BlockedDates() []time.Time {
	dates := make([]time.Time, 0, BlockDays)
	day := b.DeliveryDate
	for i := 0; i < BlockDays; i++ {
		dates = append(dates, day.AddDate(0, 0, i))
	}
	return dates
}
