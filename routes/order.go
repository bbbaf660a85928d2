package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/config"
	orderControllers "github.com/sahand-dev/bazaar-api/controllers/order"
	"github.com/sahand-dev/bazaar-api/middleware"
	"github.com/sahand-dev/bazaar-api/notify"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *notify.Hub) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(cfg))
	{
		orders.POST("/", orderControllers.CheckoutHandler(db, hub))
		orders.GET("/", orderControllers.ListMyOrders(db))
		orders.GET("/:ref", orderControllers.GetMyOrder(db))
	}

	// websocket endpoint for real-time cart/order notifications
	r.GET("/ws/notifications", hub.Handler())
}
