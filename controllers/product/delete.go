package productController

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
	"github.com/sahand-dev/bazaar-api/store"
)

// DELETE /admin/products/:id
//
// Products referenced by an order line are deactivated instead of removed,
// so order history keeps a resolvable product id.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var referenced int64
		if err := db.Model(&models.OrderItem{}).
			Where("product_id = ?", uint(id)).
			Count(&referenced).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if referenced > 0 {
			if err := db.Model(&models.Product{}).
				Where("id = ?", uint(id)).
				Update("is_active", false).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate product"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Product is referenced by orders and was deactivated"})
			return
		}

		err = products.Delete(uint(id))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
