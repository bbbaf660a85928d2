package productController

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
	"github.com/sahand-dev/bazaar-api/store"
)

type ProductUpdateInput struct {
	CategoryID       *uint   `json:"category_id"`
	BrandID          *uint   `json:"brand_id"`
	Name             *string `json:"name"`
	Image            *string `json:"image"`
	ShortDescription *string `json:"short_description"`
	Description      *string `json:"description"`
	Price            *int64  `json:"price"`
	Stock            *int    `json:"stock"`
	Status           *string `json:"status"`
	IsActive         *bool   `json:"is_active"`

	Discount *DiscountInput `json:"discount"`
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var product models.Product
		if err := db.Preload("Discount").First(&product, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.CategoryID != nil {
			product.CategoryID = *input.CategoryID
		}
		if input.BrandID != nil {
			product.BrandID = input.BrandID
		}
		if input.Name != nil {
			product.Name = *input.Name
			product.Slug = "" // regenerated from the new name on save
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if input.ShortDescription != nil {
			product.ShortDescription = *input.ShortDescription
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if *input.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
				return
			}
			product.Price = *input.Price
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.Status != nil {
			product.Status = models.ProductStatus(*input.Status)
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		if input.Discount != nil {
			discount := models.Discount{
				Value:      decimal.NewFromFloat(input.Discount.Value),
				IsActive:   input.Discount.IsActive,
				StartDate:  input.Discount.StartDate,
				ExpireDate: input.Discount.ExpireDate,
			}
			if product.Discount != nil {
				discount.ID = product.Discount.ID
			}
			product.Discount = &discount
		}

		if err := store.NewProductStore(db).Update(&product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
