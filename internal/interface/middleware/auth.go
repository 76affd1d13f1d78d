package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/pkg/helpers"
	"github.com/devlinkhq/devlink/pkg/response"
)

const (
	CtxUserIDKey     = "userID"
	CtxUserNameKey   = "userName"
	CtxUserAvatarKey = "userAvatar"
)

// Auth resolves the acting identity from a bearer token and rejects the
// request before any handler runs when the token is missing or invalid.
// Verification is stateless: claims are re-derived from the token on
// every request, with no server-side session table. Forged and expired
// tokens surface identically.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing token", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserNameKey, claims.Name)
		c.Set(CtxUserAvatarKey, claims.AvatarURL)
		c.Next()
	}
}

// bearerToken reads the Authorization header, falling back to the
// session cookie for browser clients.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}
