package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/feestindetent/booking-backend/internal/services"
)

// WebSocketHandler connects an admin dashboard to the live booking feed.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("adminEmail")
		services.HandleWebSocket(hub, c.Writer, c.Request, email)
	}
}
