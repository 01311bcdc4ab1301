package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gstdesk/internal/auth"
	"gstdesk/internal/domain"
)

const (
	ContextKeyBusiness = "business"
	ContextKeyClaims   = "claims"
)

// AuthMiddleware returns Gin middleware that validates JWT tokens and injects
// the business context.
func AuthMiddleware(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := verifier.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyBusiness, claims.BusinessContext())
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// BusinessGuard ensures a business context is present. It relies on
// AuthMiddleware having already run.
func BusinessGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetBusinessContext(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "business context required"},
			})
			return
		}
		c.Next()
	}
}

// GetBusinessContext extracts the business context from the Gin context.
func GetBusinessContext(c *gin.Context) (domain.BusinessContext, error) {
	val, exists := c.Get(ContextKeyBusiness)
	if !exists {
		return domain.BusinessContext{}, domain.ErrUnauthorized
	}
	bc, ok := val.(domain.BusinessContext)
	if !ok {
		return domain.BusinessContext{}, domain.ErrUnauthorized
	}
	return bc, nil
}
