package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prudhivi99/product-api/internal/auth"
)

// UserIDKey is the gin context key under which the guard stores the
// authenticated user's id.
const UserIDKey = "userID"

// TokenCache looks up the currently-valid access token for a user.
type TokenCache interface {
	GetAccessToken(ctx context.Context, userID string) (string, error)
}

// ExtractToken extracts the bearer token from the Authorization header
func ExtractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RequireRoles guards a route behind bearer authentication. The token must
// verify, carry one of the allowed roles, and exactly match the token cached
// for its user — a verified token missing from the cache counts as revoked.
// On success the user id is stored on the context.
func RequireRoles(jwtService *auth.JWTService, tokens TokenCache, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		tokenString := ExtractToken(c.Request)
		if tokenString == "" {
			abortUnauthorized(c, "missing or invalid authorization header")
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		if !allowed[claims.Role] {
			abortUnauthorized(c, "insufficient privileges")
			return
		}

		cached, err := tokens.GetAccessToken(c.Request.Context(), claims.UserID)
		if err != nil || cached != tokenString {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
