package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feestindetent/booking-backend/internal/calendar"
	"github.com/feestindetent/booking-backend/internal/config"
	"github.com/feestindetent/booking-backend/internal/models"
	"github.com/feestindetent/booking-backend/internal/services"
	"github.com/feestindetent/booking-backend/pkg/utils"
)

// Mailer sends the booking notifications. Implemented by utils.Mailer;
// the indirection exists so handler tests can assert which mails would
// have gone out.
type Mailer interface {
	SendBookingNotification(businessEmail string, b *models.Booking, approvalToken string) error
	SendApprovalConfirmation(b *models.Booking) error
}

// CreateBooking handles a reservation submission: validate, price, reserve
// the calendar block, persist, notify. A validation failure stops before
// any external call; a calendar failure is terminal for the attempt (the
// user retries manually); a notification failure after a successful insert
// only gets logged.
func CreateBooking(db *gorm.DB, cal calendar.Service, mailer Mailer, hub *services.Hub, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CustomerName  string         `json:"customerName" binding:"required"`
			CustomerEmail string         `json:"customerEmail" binding:"required,email"`
			CustomerPhone string         `json:"customerPhone"`
			TentType      string         `json:"tentType" binding:"required"`
			Date          string         `json:"date" binding:"required"`
			Time          string         `json:"time"`
			Address       models.Address `json:"address"`
			Comments      string         `json:"comments"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if strings.TrimSpace(input.Address.Street) == "" {
			c.JSON(400, gin.H{"error": "Delivery address is required"})
			return
		}

		deliveryDate, err := utils.ParseDate(input.Date)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		if deliveryDate.Before(utils.DateOnly(time.Now().UTC())) {
			c.JSON(400, gin.H{"error": "Delivery date cannot be in the past"})
			return
		}

		tent, ok := models.FindTentOption(input.TentType)
		if !ok {
			c.JSON(400, gin.H{"error": "Unknown tent type"})
			return
		}

		// Prices come from the catalog and the distance calculation, never
		// from the client.
		quote := utils.FallbackDeliveryQuote()
		if input.Address.HasCoordinates() {
			quote = utils.CalculateDeliveryCost(cfg.OriginLat, cfg.OriginLng,
				input.Address.Latitude, input.Address.Longitude)
		}

		booking := &models.Booking{
			CustomerName:  input.CustomerName,
			CustomerEmail: input.CustomerEmail,
			CustomerPhone: input.CustomerPhone,
			TentType:      tent.Name,
			BasePrice:     tent.BasePrice,
			DeliveryCost:  quote.DeliveryCost,
			Total:         utils.Round2(tent.BasePrice + quote.DeliveryCost),
			DeliveryDate:  deliveryDate,
			DeliveryTime:  input.Time,
			Address:       input.Address,
			Comments:      input.Comments,
			Status:        models.BookingStatusToApprove,
		}

		ctx := c.Request.Context()
		blocked := booking.BlockedDates()

		// Re-check the calendar for the requested window. A lookup failure
		// fails open here; an actually unreachable calendar will make the
		// insert below fail anyway.
		if taken, err := cal.BookedDates(ctx, blocked[0], blocked[0].AddDate(0, 0, models.BlockDays)); err != nil {
			log.Printf("Warning: conflict check failed, proceeding: %v", err)
		} else if len(taken) > 0 {
			c.JSON(409, gin.H{"error": "Date not available"})
			return
		}

		// Short-lived per-date holds close the race between the check
		// above and the insert below when two submissions want the same
		// date.
		held, err := services.ReserveDates(ctx, blocked)
		if err != nil {
			log.Printf("Warning: date reservation unavailable: %v", err)
		}
		if !held {
			c.JSON(409, gin.H{"error": "Date not available"})
			return
		}

		eventID, err := cal.InsertBooking(ctx, booking)
		if err != nil {
			services.ReleaseDates(ctx, blocked)
			log.Printf("Calendar insert error: %v", err)
			c.JSON(500, gin.H{"error": "Failed to create calendar event", "details": err.Error()})
			return
		}
		booking.EventID = eventID

		// The calendar event is the reservation; a failed row insert is an
		// admin-overview gap, not a failed booking.
		if err := db.Create(booking).Error; err != nil {
			log.Printf("Warning: failed to persist booking %s: %v", eventID, err)
		}

		services.InvalidateAvailability(ctx, blocked)

		token, err := utils.GenerateApprovalToken(eventID, booking.CustomerEmail, []byte(cfg.JWTSecret))
		if err != nil {
			log.Printf("Warning: failed to sign approval token for %s: %v", eventID, err)
		} else if err := mailer.SendBookingNotification(cfg.BusinessEmail, booking, token); err != nil {
			log.Printf("Warning: booking notification failed for %s: %v", eventID, err)
		}

		if hub != nil {
			hub.Broadcast("booking:new", gin.H{
				"eventId":      eventID,
				"customerName": booking.CustomerName,
				"tentType":     booking.TentType,
				"date":         booking.DeliveryDate.Format(utils.DateLayout),
				"total":        booking.Total,
			})
		}

		c.JSON(200, gin.H{"eventId": eventID})
	}
}

// GetBookings lists the persisted booking requests for the admin overview.
func GetBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var bookings []models.Booking
		if err := query.Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}
