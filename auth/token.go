package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sahand-dev/bazaar-api/config"
	"github.com/sahand-dev/bazaar-api/models"
)

const tokenTTL = 24 * time.Hour

func issueUserToken(cfg *config.Config, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    "user",
		"name":    user.Name,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func issueGuestToken(cfg *config.Config, sessionKey string) (string, error) {
	claims := jwt.MapClaims{
		"session_key": sessionKey,
		"role":        "guest",
		"exp":         time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
