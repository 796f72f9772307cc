package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feestindetent/booking-backend/internal/calendar"
	"github.com/feestindetent/booking-backend/internal/config"
	"github.com/feestindetent/booking-backend/internal/models"
	"github.com/feestindetent/booking-backend/pkg/utils"
)

// ApproveBooking handles the link from the notification email: it moves
// the calendar event to the approved calendar, flips the stored status and
// mails the customer the deposit instructions. Safe to click twice.
func ApproveBooking(db *gorm.DB, cal calendar.Service, mailer Mailer, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			c.JSON(400, gin.H{"error": "Missing approval token"})
			return
		}

		eventID, _, err := utils.ParseApprovalToken(tokenString, []byte(cfg.JWTSecret))
		if err != nil {
			c.JSON(401, gin.H{"error": "Invalid or expired approval link"})
			return
		}

		var booking models.Booking
		found := true
		if err := db.Where("event_id = ?", eventID).First(&booking).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(500, gin.H{"error": "Failed to load booking"})
				return
			}
			found = false
		}

		if found && booking.Status == models.BookingStatusApproved {
			c.JSON(200, gin.H{"message": "Booking already approved", "eventId": eventID})
			return
		}

		if err := cal.ApproveEvent(c.Request.Context(), eventID); err != nil {
			log.Printf("Calendar approve error for %s: %v", eventID, err)
			c.JSON(500, gin.H{"error": "Failed to approve booking", "details": err.Error()})
			return
		}

		if found {
			if err := db.Model(&booking).Update("status", models.BookingStatusApproved).Error; err != nil {
				log.Printf("Warning: failed to update booking %s status: %v", eventID, err)
			}
			booking.Status = models.BookingStatusApproved
			if err := mailer.SendApprovalConfirmation(&booking); err != nil {
				log.Printf("Warning: approval confirmation failed for %s: %v", eventID, err)
			}
		} else {
			// The calendar event was approved but no local record exists
			// to mail a confirmation from.
			log.Printf("Warning: no stored booking for approved event %s", eventID)
		}

		c.JSON(200, gin.H{"message": "Booking approved", "eventId": eventID})
	}
}
