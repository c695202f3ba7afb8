package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auth-api/pkg/helpers"
	"auth-api/pkg/response"
)

const (
	// CtxUserIDKey is where Auth stores the authenticated principal's id.
	CtxUserIDKey = "userID"
	// CtxClaimsKey holds the full parsed claim set for role checks.
	CtxClaimsKey = "authClaims"
)

// Auth validates the Authorization bearer token and injects the
// principal into the Gin context. Token verification is the only gate;
// there is no session store to consult.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "Missing access token.", nil)
			return
		}
		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid access token.", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// RequireRole is an explicit authorization decision point: it rejects
// any principal whose token does not carry the given role. Must run
// after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "Missing access token.", nil)
			return
		}
		if !claims.HasRole(role) {
			response.AbortError(c, http.StatusForbidden, "Insufficient permissions.", nil)
			return
		}
		c.Next()
	}
}

// GetClaims returns the parsed token claims stored by Auth.
func GetClaims(c *gin.Context) (*helpers.Claims, bool) {
	val, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := val.(*helpers.Claims)
	return claims, ok
}
