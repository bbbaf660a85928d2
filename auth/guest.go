package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sahand-dev/bazaar-api/config"
)

// POST /auth/guest
//
// Issues a fresh anonymous session key and a guest token carrying it. The
// session key is what a later login hands back so the guest cart can be
// merged.
func CreateGuestSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionKey := uuid.NewString()

		token, err := issueGuestToken(cfg, sessionKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_key": sessionKey,
			"token":       token,
		})
	}
}
