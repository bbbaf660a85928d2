package adminControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
)

type SiteSettingsInput struct {
	SiteName   *string `json:"site_name"`
	Logo       *string `json:"logo"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	FooterText *string `json:"footer_text"`
}

// GET /admin/settings
func GetSiteSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.SiteSettings
		err := db.First(&settings).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.SiteSettings{})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// PUT /admin/settings — updates the single settings row, creating it on
// first use.
func UpdateSiteSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SiteSettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var settings models.SiteSettings
		err := db.First(&settings).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}

		if input.SiteName != nil {
			settings.SiteName = *input.SiteName
		}
		if input.Logo != nil {
			settings.Logo = *input.Logo
		}
		if input.Phone != nil {
			settings.Phone = *input.Phone
		}
		if input.Email != nil {
			settings.Email = *input.Email
		}
		if input.FooterText != nil {
			settings.FooterText = *input.FooterText
		}

		if err := db.Save(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
