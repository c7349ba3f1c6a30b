package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fixu-in/fixu-api/internal/utils"
)

// Context keys set by Authenticate for downstream handlers.
const (
	UserIDKey  = "userID"
	EmailKey   = "userEmail"
	IsAdminKey = "isAdmin"
)

// AuthCookieName is the http-only cookie carrying the token for browser
// clients that do not set an Authorization header.
const AuthCookieName = "auth-token"

// TokenFromRequest extracts the bearer token from the Authorization header,
// falling back to the auth cookie.
func TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if token, err := c.Cookie(AuthCookieName); err == nil && token != "" {
		return token
	}
	return ""
}

// Authenticate rejects requests without a valid token and stores the token's
// claims in the request context.
func Authenticate(jwtMgr *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := jwtMgr.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(IsAdminKey, claims.IsAdmin)

		c.Next()
	}
}

// RequireAdmin gates a route group to admin tokens. Must run after
// Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(IsAdminKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
