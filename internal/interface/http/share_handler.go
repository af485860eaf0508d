package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/pkg/response"
	"github.com/easyworldradio/workspace7/pkg/sharecode"
	"github.com/easyworldradio/workspace7/pkg/validation"
)

// ShareHandler covers share-token minting, the public decode endpoint
// and the session-bound read-only view.
type ShareHandler struct {
	Workspaces *application.WorkspaceService
	Sessions   *application.SessionService
	Logger     *logrus.Logger
}

func NewShareHandler(workspaces *application.WorkspaceService, sessions *application.SessionService, logger *logrus.Logger) *ShareHandler {
	return &ShareHandler{Workspaces: workspaces, Sessions: sessions, Logger: logger}
}

// Mint POST /api/workspaces/:id/share
func (h *ShareHandler) Mint(c *gin.Context) {
	uid := c.GetString("userID")
	token, err := h.Workspaces.Share(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, map[string]any{"token": token, "fragment": "#" + token}, "share token", nil)
}

// Resolve GET /api/share/:token
//
// Public and stateless. A token that fails to decode yields an empty
// 200, matching the "no shared workspace" presentation; the decode
// error itself never leaves the server.
func (h *ShareHandler) Resolve(c *gin.Context) {
	w, err := sharecode.Decode(c.Param("token"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Debug("share token rejected")
		}
		response.Success[any](c, http.StatusOK, nil, "no shared workspace", nil)
		return
	}
	response.Success(c, http.StatusOK, w, "shared workspace", nil)
}

type openSharedViewRequest struct {
	Fragment string `json:"fragment" binding:"required"`
}

// OpenSharedView POST /api/session/shared-view
//
// Pins a decoded share token as the session's read-only workspace.
// Invalid tokens are not an error: the view is simply left empty.
func (h *ShareHandler) OpenSharedView(c *gin.Context) {
	var req openSharedViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	w := h.Sessions.OpenSharedView(req.Fragment)
	if w == nil {
		response.Success[any](c, http.StatusOK, nil, "no shared workspace", nil)
		return
	}
	response.Success(c, http.StatusOK, w, "shared view opened", nil)
}

// SharedView GET /api/session/shared-view
func (h *ShareHandler) SharedView(c *gin.Context) {
	w := h.Sessions.SharedView()
	if w == nil {
		response.Success[any](c, http.StatusOK, nil, "no shared workspace", nil)
		return
	}
	response.Success(c, http.StatusOK, w, "shared view", nil)
}

// CloseSharedView DELETE /api/session/shared-view
func (h *ShareHandler) CloseSharedView(c *gin.Context) {
	h.Sessions.CloseSharedView()
	response.Success[any](c, http.StatusOK, map[string]any{"closed": true}, "shared view closed", nil)
}
