package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feestindetent/booking-backend/internal/calendar"
	"github.com/feestindetent/booking-backend/internal/services"
	"github.com/feestindetent/booking-backend/pkg/utils"
)

// GetAvailability returns the booked dates for a month so the form can
// disable them. The month parameter is zero-based, matching the frontend's
// Date.getMonth(). A calendar failure never fails the page load: the
// handler serves the last known result, or an empty list, with a warning.
func GetAvailability(cal calendar.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now().UTC()
		year := now.Year()
		monthIdx := int(now.Month()) - 1

		if v := c.Query("year"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid year"})
				return
			}
			year = parsed
		}
		if v := c.Query("month"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 0 || parsed > 11 {
				c.JSON(400, gin.H{"error": "Invalid month, expected 0-11"})
				return
			}
			monthIdx = parsed
		}
		month := time.Month(monthIdx + 1)

		c.Header("Cache-Control", "public, max-age=3600") // Cache for 1 hour

		ctx := c.Request.Context()

		if cached, ok := services.GetCachedBookedDates(ctx, year, month); ok {
			c.JSON(200, gin.H{"bookedDates": cached})
			return
		}

		from, to := calendar.MonthRange(year, month)
		dates, err := cal.BookedDates(ctx, from, to)
		if err != nil {
			log.Printf("Warning: availability lookup failed: %v", err)
			if stale, ok := services.GetLastKnownBookedDates(ctx, year, month); ok {
				c.JSON(200, gin.H{
					"bookedDates": stale,
					"warning":     "calendar unreachable, serving last known availability",
				})
				return
			}
			c.JSON(200, gin.H{
				"bookedDates": []string{},
				"warning":     "calendar unreachable, no dates blocked",
			})
			return
		}

		booked := make([]string, 0, len(dates))
		for _, d := range dates {
			booked = append(booked, d.Format(utils.DateLayout))
		}

		if err := services.CacheBookedDates(ctx, year, month, booked); err != nil {
			log.Printf("Warning: failed to cache availability: %v", err)
		}

		c.JSON(200, gin.H{"bookedDates": booked})
	}
}
