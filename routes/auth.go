package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/auth"
	"github.com/sahand-dev/bazaar-api/config"
	productController "github.com/sahand-dev/bazaar-api/controllers/product"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestSession(cfg))
		authGroup.POST("/login", auth.LoginHandler(db, cfg))
	}
}

// SetupCatalogRoutes registers the public storefront reads.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productController.GetProducts(db))
	r.GET("/products/:slug", productController.GetProductBySlug(db))
	r.GET("/products/:slug/comments", productController.GetProductComments(db))
	r.GET("/categories", productController.GetCategories(db))
	r.GET("/brands", productController.GetBrands(db))
	r.GET("/banners", productController.GetBanners(db))
}
