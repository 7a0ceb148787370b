package http

import (
	"crypto/subtle"
	"net/http"

	"storefront/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const adminRealm = `Basic realm="Admin Area"`

// AdminAuth guards admin routes with HTTP basic auth against the configured
// credential.
func AdminAuth(cfg config.AdminConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !checkAdmin(cfg, user, pass) {
			c.Header("WWW-Authenticate", adminRealm)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func checkAdmin(cfg config.AdminConfig, user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username)) == 1
	if cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(pass)) == nil && userOK
	}
	return subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password)) == 1 && userOK
}
