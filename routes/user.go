package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/config"
	cartControllers "github.com/sahand-dev/bazaar-api/controllers/cart"
	productController "github.com/sahand-dev/bazaar-api/controllers/product"
	userControllers "github.com/sahand-dev/bazaar-api/controllers/user"
	"github.com/sahand-dev/bazaar-api/middleware"
	"github.com/sahand-dev/bazaar-api/notify"
)

// SetupUserRoutes registers the cart (shared by user and guest tokens) and
// the profile endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *notify.Hub) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken(cfg))
	{
		cartGroup.GET("/", cartControllers.GetCart(db))
		cartGroup.POST("/", cartControllers.AddCartItem(db, hub))
		cartGroup.PUT("/", cartControllers.UpdateCartItems(db, hub))
		cartGroup.DELETE("/:item_id", cartControllers.RemoveCartItem(db, hub))
		cartGroup.DELETE("/", cartControllers.DeleteCart(db, hub))
	}

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg))
	{
		userGroup.GET("/me", userControllers.GetMe(db))
		userGroup.PUT("/me", userControllers.UpdateMe(db))

		userGroup.GET("/addresses", userControllers.ListAddresses(db))
		userGroup.POST("/addresses", userControllers.CreateAddress(db))
		userGroup.DELETE("/addresses/:id", userControllers.DeleteAddress(db))

		userGroup.POST("/products/:slug/comments", productController.PostProductComment(db))
	}
}
