package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"archatara/internal/app/services/auth"
)

const sessionEmailKey = "admin_email"

// AdminAuth rejects requests without a valid bearer session token.
func AdminAuth(service *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		session, err := service.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Set(sessionEmailKey, session.Email)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
