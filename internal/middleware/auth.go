package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mightcoding/ISSAConnect/internal/domain"
	"github.com/mightcoding/ISSAConnect/internal/response"
	"github.com/mightcoding/ISSAConnect/internal/service"
)

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey = "user_id"
	// ClaimsKey is the context key for the verified token claims
	ClaimsKey = "claims"
)

// JWTConfig holds JWT middleware configuration
type JWTConfig struct {
	AuthService service.AuthService
	SkipPaths   []string
}

// JWTMiddleware verifies the bearer token and stores the claims in the
// request context
func JWTMiddleware(cfg *JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range cfg.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Authorization header must be 'Bearer {token}'")
			c.Abort()
			return
		}

		claims, err := cfg.AuthService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			if err == domain.ErrTokenExpired {
				response.Unauthorized(c, "Token has expired")
			} else {
				response.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequirePrivileged rejects callers whose token carries neither the staff
// nor the superuser flag
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !claims.Privileged() {
			response.Forbidden(c, "Administrator access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the context
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}

// GetClaims returns the verified token claims from the context
func GetClaims(c *gin.Context) *domain.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*domain.Claims); ok {
			return claims
		}
	}
	return nil
}
