package router

import (
	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/internal/container"
	"github.com/easyworldradio/workspace7/internal/infrastructure/records"
	handlers "github.com/easyworldradio/workspace7/internal/interface/http"
	"github.com/easyworldradio/workspace7/internal/router/modules"
	"github.com/easyworldradio/workspace7/pkg/assistant"
)

// InitModules builds the repository, service and handler graph from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	store := container.GetStore()

	users := records.NewUserRepository(store)
	workspaces := records.NewWorkspaceRepository(store)
	sessionSlot := records.NewSessionStore(store)

	sessions := application.NewSessionService(users, workspaces, sessionSlot, logger)
	auth := application.NewAuthService(users, sessions, logger)
	workspaceSvc := application.NewWorkspaceService(
		workspaces,
		sessions,
		logger,
		container.GetES(),
		cfg.ESWorkspacesIndex,
		container.GetGCS(),
		cfg.GCSBucket,
	)
	invites := application.NewInviteService(workspaces, users, sessions, logger, container.GetRabbitPub())

	var ai assistant.Assistant
	if cfg.GeminiAPIKey != "" {
		ai = assistant.NewGemini(cfg.GeminiAPIKey)
	}
	assistantSvc := application.NewAssistantService(ai, logger)

	authHandler := handlers.NewAuthHandler(auth, sessions, container.GetJWT(), logger, cfg.CookieDomain, cfg.CookieSecure)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceSvc, logger)
	inviteHandler := handlers.NewInviteHandler(invites, logger)
	shareHandler := handlers.NewShareHandler(workspaceSvc, sessions, logger)
	assistantHandler := handlers.NewAssistantHandler(assistantSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, sessions))
	r.Add(modules.NewWorkspaceModule(workspaceHandler, inviteHandler, shareHandler, sessions))
	r.Add(modules.NewAssistantModule(assistantHandler, sessions))
	r.Add(modules.NewDebugModule())
}
