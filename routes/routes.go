package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/config"
	"github.com/sahand-dev/bazaar-api/notify"
)

// SetupRoutes is the single entry-point that wires up the public, user and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *notify.Hub) {
	// Public auth + catalog browsing (no middleware)
	SetupAuthRoutes(r, db, cfg)
	SetupCatalogRoutes(r, db)

	// Cart + profile (JWT, user or guest)
	SetupUserRoutes(r, db, cfg, hub)

	// Orders (JWT)
	SetupOrderRoutes(r, db, cfg, hub)

	// Admin (API key)
	SetupAdminRoutes(r, db, cfg, hub)
}
