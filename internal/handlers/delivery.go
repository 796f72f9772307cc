package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/feestindetent/booking-backend/internal/config"
	"github.com/feestindetent/booking-backend/pkg/utils"
)

// QuoteDelivery prices the delivery surcharge for the booking form. A
// destination without coordinates gets the zero-cost fallback, flagged as
// an estimate so the form can say so.
func QuoteDelivery(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Latitude == 0 && input.Longitude == 0 {
			c.JSON(200, utils.FallbackDeliveryQuote())
			return
		}

		quote := utils.CalculateDeliveryCost(cfg.OriginLat, cfg.OriginLng, input.Latitude, input.Longitude)
		c.JSON(200, quote)
	}
}
