package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/services/admin"
)

// ClaimsKey is the gin context key holding the verified admin claims.
const ClaimsKey = "claims"

// AuthMiddleware requires an admin bearer token. It is a no-op when no admin
// password is configured.
func AuthMiddleware(auth admin.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Enabled() {
			c.Next()
			return
		}

		// "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
			xerr.AbortWithError(c, http.StatusUnauthorized, xerr.ErrUnauthorized.Error())
			return
		}

		claims, err := auth.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			xerr.AbortWithError(c, http.StatusUnauthorized, xerr.ErrUnauthorized.Error())
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
