package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/feestindetent/booking-backend/internal/config"
	"github.com/feestindetent/booking-backend/pkg/utils"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates the business owner. There is a single admin account,
// configured as an email plus a bcrypt hash; no user registration exists.
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
			c.JSON(503, gin.H{"error": "Admin login not configured"})
			return
		}

		if !strings.EqualFold(input.Email, cfg.AdminEmail) {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(input.Password)); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := utils.GenerateAdminToken(cfg.AdminEmail, []byte(cfg.JWTSecret))
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{"token": token, "email": cfg.AdminEmail})
	}
}
