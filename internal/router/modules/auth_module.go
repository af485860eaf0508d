package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/internal/container"
	handlers "github.com/easyworldradio/workspace7/internal/interface/http"
	"github.com/easyworldradio/workspace7/internal/interface/middleware"
)

// AuthModule wires the account endpoints.
// Public: POST /api/register, POST /api/login
// Protected: POST /api/logout, GET /api/profile, PUT /api/profile,
// DELETE /api/account
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Sessions *application.SessionService
}

func NewAuthModule(h *handlers.AuthHandler, sessions *application.SessionService) *AuthModule {
	return &AuthModule{Handler: h, Sessions: sessions}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public with per-IP rate limiting
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.DELETE("/account", m.Handler.DeleteAccount)
	}
}
