package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/pkg/response"
	"github.com/easyworldradio/workspace7/pkg/validation"
)

// InviteHandler serves the join-by-code flow and the invite email
// endpoint.
type InviteHandler struct {
	Svc    *application.InviteService
	Logger *logrus.Logger
}

func NewInviteHandler(svc *application.InviteService, logger *logrus.Logger) *InviteHandler {
	return &InviteHandler{Svc: svc, Logger: logger}
}

type joinRequest struct {
	InviteCode string `json:"inviteCode" binding:"required,len=6"`
}

// Join POST /api/invites/join
func (h *InviteHandler) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString("userID")
	w, err := h.Svc.Join(c.Request.Context(), uid, req.InviteCode)
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, w, "joined workspace", nil)
}

type emailInviteRequest struct {
	To string `json:"to" binding:"required,email"`
}

// Email POST /api/workspaces/:id/invite/email
func (h *InviteHandler) Email(c *gin.Context) {
	var req emailInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString("userID")
	if err := h.Svc.EmailInvite(c.Request.Context(), uid, c.Param("id"), req.To); err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success[any](c, http.StatusAccepted, map[string]any{"queued": true}, "invite queued", nil)
}
