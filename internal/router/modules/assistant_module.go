package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/internal/container"
	handlers "github.com/easyworldradio/workspace7/internal/interface/http"
	"github.com/easyworldradio/workspace7/internal/interface/middleware"
)

// AssistantModule wires the AI text endpoints. Tight per-user limits:
// each call may hit the upstream model.
type AssistantModule struct {
	Handler  *handlers.AssistantHandler
	Sessions *application.SessionService
}

func NewAssistantModule(h *handlers.AssistantHandler, sessions *application.SessionService) *AssistantModule {
	return &AssistantModule{Handler: h, Sessions: sessions}
}

func (m *AssistantModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/assist/refine", m.Handler.Refine)
		auth.POST("/assist/suggest", m.Handler.Suggest)
	}
}
