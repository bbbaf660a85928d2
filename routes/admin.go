package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/config"
	adminControllers "github.com/sahand-dev/bazaar-api/controllers/admin"
	orderControllers "github.com/sahand-dev/bazaar-api/controllers/order"
	productController "github.com/sahand-dev/bazaar-api/controllers/product"
	"github.com/sahand-dev/bazaar-api/middleware"
	"github.com/sahand-dev/bazaar-api/notify"
)

// SetupAdminRoutes registers all /admin/* endpoints behind the API key.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *notify.Hub) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey(cfg))
	{
		admin.POST("/products", productController.CreateProduct(db))
		admin.PUT("/products/:id", productController.UpdateProduct(db))
		admin.DELETE("/products/:id", productController.DeleteProduct(db))
		admin.GET("/products/export", productController.ExportProductsToExcel(db))

		admin.POST("/categories", productController.CreateCategory(db))
		admin.POST("/brands", productController.CreateBrand(db))

		admin.GET("/orders", orderControllers.ListAllOrders(db))
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatus(db, hub))
		admin.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))

		admin.GET("/banners", adminControllers.GetBanners(db))
		admin.POST("/banners", adminControllers.CreateBanner(db))
		admin.DELETE("/banners/:id", adminControllers.DeleteBanner(db))

		admin.GET("/settings", adminControllers.GetSiteSettings(db))
		admin.PUT("/settings", adminControllers.UpdateSiteSettings(db))

		admin.GET("/comments", adminControllers.ListComments(db))
		admin.PUT("/comments/:id/approve", adminControllers.ApproveComment(db))
		admin.DELETE("/comments/:id", adminControllers.DeleteComment(db))
	}
}
