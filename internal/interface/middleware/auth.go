package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/pkg/helpers"
	"github.com/easyworldradio/workspace7/pkg/response"
)

// Auth validates the access token cookie and checks that the session
// slot still holds the same user. It sets userID and userName in the
// Gin context on success.
func Auth(sessions *application.SessionService, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		u, err := sessions.Current(c.Request.Context())
		if err != nil || u == nil || u.ID != claims.UserID {
			response.AbortError[any](c, http.StatusUnauthorized, "session not found", nil)
			return
		}
		c.Set("userID", u.ID)
		c.Set("userName", u.Username)
		c.Next()
	}
}
