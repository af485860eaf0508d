package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/internal/container"
	handlers "github.com/easyworldradio/workspace7/internal/interface/http"
	"github.com/easyworldradio/workspace7/internal/interface/middleware"
)

// WorkspaceModule wires workspace CRUD, board and resource routes, the
// invite flow and sharing. Everything except the public share resolver
// requires a session.
type WorkspaceModule struct {
	Workspaces *handlers.WorkspaceHandler
	Invites    *handlers.InviteHandler
	Shares     *handlers.ShareHandler
	Sessions   *application.SessionService
}

func NewWorkspaceModule(w *handlers.WorkspaceHandler, i *handlers.InviteHandler, sh *handlers.ShareHandler, sessions *application.SessionService) *WorkspaceModule {
	return &WorkspaceModule{Workspaces: w, Invites: i, Shares: sh, Sessions: sessions}
}

func (m *WorkspaceModule) Register(rg *gin.RouterGroup) {
	// Public, stateless share resolver with per-IP rate limiting
	resolveLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath())
	rg.GET("/share/:token", resolveLimiter, m.Shares.Resolve)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 240, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/workspaces", m.Workspaces.List)
		auth.POST("/workspaces", m.Workspaces.Create)
		auth.GET("/workspaces/search", m.Workspaces.Search)
		auth.GET("/workspaces/:id", m.Workspaces.Get)
		auth.PUT("/workspaces/:id", m.Workspaces.Update)
		auth.DELETE("/workspaces/:id", m.Workspaces.Delete)

		auth.POST("/workspaces/:id/steps", m.Workspaces.AddStep)
		auth.PUT("/workspaces/:id/steps/:stepID/status", m.Workspaces.SetStepStatus)
		auth.POST("/workspaces/:id/steps/:stepID/toggle", m.Workspaces.ToggleStep)

		auth.POST("/workspaces/:id/resources", m.Workspaces.AddResource)
		auth.PUT("/workspaces/:id/resources/:resID", m.Workspaces.UpdateResource)
		auth.DELETE("/workspaces/:id/resources/:resID", m.Workspaces.RemoveResource)

		auth.POST("/workspaces/:id/share", m.Shares.Mint)
		auth.POST("/workspaces/:id/export", m.Workspaces.Export)
		auth.POST("/workspaces/:id/invite/email", m.Invites.Email)

		auth.POST("/invites/join", m.Invites.Join)

		auth.GET("/session/shared-view", m.Shares.SharedView)
		auth.POST("/session/shared-view", m.Shares.OpenSharedView)
		auth.DELETE("/session/shared-view", m.Shares.CloseSharedView)
	}
}
