package productController

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
	"github.com/sahand-dev/bazaar-api/store"
)

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		filter := store.ProductFilter{
			Search: c.Query("search"),
			SortBy: c.DefaultQuery("sort_by", "created_at"),
		}
		filter.SortDesc = strings.ToLower(c.DefaultQuery("order", "desc")) != "asc"

		if v := c.Query("category_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			filter.CategoryID = uint(id)
		}
		if v := c.Query("brand_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand_id"})
				return
			}
			filter.BrandID = uint(id)
		}
		if v := c.Query("min_price"); v != "" {
			p, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			filter.MinPrice = p
		}
		if v := c.Query("max_price"); v != "" {
			p, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			filter.MaxPrice = p
		}

		list, err := products.List(filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /products/:slug
func GetProductBySlug(db *gorm.DB) gin.HandlerFunc {
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

		c.JSON(http.StatusOK, gin.H{
			"product":     product,
			"final_price": product.FinalPriceAt(time.Now()),
		})
	}
}

// GET /banners (public storefront content)
func GetBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Where("is_active = ?", true).Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}
