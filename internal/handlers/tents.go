package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/feestindetent/booking-backend/internal/models"
	"github.com/feestindetent/booking-backend/internal/services"
)

// GetTentOptions returns the rental catalog with resolved image URLs.
func GetTentOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		options := models.TentOptions()
		out := make([]gin.H, 0, len(options))
		for _, opt := range options {
			out = append(out, gin.H{
				"id":       opt.ID,
				"name":     opt.Name,
				"price":    opt.BasePrice,
				"features": opt.Features,
				"imageUrl": services.GetImageURL(opt.ImagePath),
			})
		}

		c.JSON(200, gin.H{"tentOptions": out})
	}
}

// UploadTentImage stores a new gallery image for a catalog entry.
func UploadTentImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, ok := models.FindTentOption(id); !ok {
			c.JSON(404, gin.H{"error": "Unknown tent option"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "Image file required"})
			return
		}

		path, err := services.UploadImage(file, "tents")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload image"})
			return
		}

		models.SetTentImage(id, path)

		c.JSON(200, gin.H{"imageUrl": services.GetImageURL(path)})
	}
}
