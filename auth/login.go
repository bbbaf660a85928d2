package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/cartops"
	"github.com/sahand-dev/bazaar-api/config"
	"github.com/sahand-dev/bazaar-api/models"
)

type LoginRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`

	// SessionKey is the anonymous session captured before authentication;
	// its cart is merged into the user's cart on success.
	SessionKey string `json:"session_key"`
}

// POST /auth/login
//
// The identity provider upstream has already verified this payload; here we
// get-or-create the user, fold any guest cart into theirs, and hand out a
// token. The merge is best-effort: a failure is logged and the login still
// succeeds.
func LoginHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		var user models.User
		err := db.Where("email = ?", req.Email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				ID:       uuid.NewString(),
				Email:    req.Email,
				Name:     req.Name,
				Picture:  req.Picture,
				Provider: "upstream",
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		case err == nil:
			if req.Name != "" || req.Picture != "" {
				db.Model(&user).Updates(models.User{Name: req.Name, Picture: req.Picture})
			}
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		mergeStatus := "no-guest-cart"
		if req.SessionKey != "" {
			merged, mergeErr := cartops.MergeGuestCart(db, req.SessionKey, user.ID)
			switch {
			case mergeErr != nil:
				log.Printf("cart merge failed for user %s: %v", user.ID, mergeErr)
				mergeStatus = "merge-failed"
			case merged:
				mergeStatus = "merged"
			}
		}

		token, err := issueUserToken(cfg, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"merge_status": mergeStatus,
			"user":         user,
			"token":        token,
		})
	}
}
