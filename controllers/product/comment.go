package productController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
	"github.com/sahand-dev/bazaar-api/store"
)

type CommentInput struct {
	Body string `json:"body" binding:"required"`
}

// GET /products/:slug/comments — approved comments only.
func GetProductComments(db *gorm.DB) gin.HandlerFunc {
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		product, err := products.FindBySlug(c.Param("slug"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var comments []models.Comment
		if err := db.Preload("User").
			Where("product_id = ? AND approved = ?", product.ID, true).
			Order("created_at DESC").
			Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
		c.JSON(http.StatusOK, comments)
	}
}

// POST /products/:slug/comments — requires an authenticated user; the
// comment waits for admin approval before appearing publicly.
func PostProductComment(db *gorm.DB) gin.HandlerFunc {
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		userID, ok := c.Get("user_id")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Commenting requires an authenticated user"})
			return
		}

		product, err := products.FindBySlug(c.Param("slug"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var input CommentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		comment := models.Comment{
			ProductID: product.ID,
			UserID:    userID.(string),
			Body:      input.Body,
		}
		if err := db.Create(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Comment submitted for review"})
	}
}
