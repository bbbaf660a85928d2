package productController

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
	"github.com/sahand-dev/bazaar-api/store"
)

type ProductInput struct {
	CategoryID       uint   `json:"category_id" binding:"required"`
	BrandID          *uint  `json:"brand_id"`
	Name             string `json:"name" binding:"required"`
	Image            string `json:"image"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	Price            int64  `json:"price" binding:"min=0"`
	Stock            int    `json:"stock" binding:"min=0"`
	Status           string `json:"status"`
	IsActive         *bool  `json:"is_active"`

	Discount *DiscountInput `json:"discount"`
}

type DiscountInput struct {
	Value      float64    `json:"value" binding:"min=0,max=100"`
	IsActive   bool       `json:"is_active"`
	StartDate  *time.Time `json:"start_date"`
	ExpireDate *time.Time `json:"expire_date"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			CategoryID:       input.CategoryID,
			BrandID:          input.BrandID,
			Name:             input.Name,
			Image:            input.Image,
			ShortDescription: input.ShortDescription,
			Description:      input.Description,
			Price:            input.Price,
			Stock:            input.Stock,
			Status:           models.ProductStatus(input.Status),
			IsActive:         true,
		}
		if product.Status == "" {
			product.Status = models.ProductStatusAvailable
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		if input.Discount != nil {
			product.Discount = &models.Discount{
				Value:      decimal.NewFromFloat(input.Discount.Value),
				IsActive:   input.Discount.IsActive,
				StartDate:  input.Discount.StartDate,
				ExpireDate: input.Discount.ExpireDate,
			}
		}

		if err := products.Create(&product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
