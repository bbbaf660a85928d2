package adminControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
)

type BannerInput struct {
	Position string `json:"position"`
	ImageURL string `json:"image_url" binding:"required"`
	LinkURL  string `json:"link_url"`
	IsActive *bool  `json:"is_active"`
}

// POST /admin/banners
func CreateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BannerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		banner := models.Banner{
			Position: models.BannerPosition(input.Position),
			ImageURL: input.ImageURL,
			LinkURL:  input.LinkURL,
			IsActive: true,
		}
		if banner.Position == "" {
			banner.Position = models.BannerPositionSlider
		}
		if input.IsActive != nil {
			banner.IsActive = *input.IsActive
		}

		if err := db.Create(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB save failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Banner created", "data": banner})
	}
}

// GET /admin/banners
func GetBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}

// DELETE /admin/banners/:id
func DeleteBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banner models.Banner
		if err := db.First(&banner, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if err := db.Delete(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
	}
}
