package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/pkg/response"
	"github.com/easyworldradio/workspace7/pkg/validation"
)

// AssistantHandler serves the AI text endpoints. Both always answer
// 200: upstream failures fall back to the input or a canned list.
type AssistantHandler struct {
	Svc    *application.AssistantService
	Logger *logrus.Logger
}

func NewAssistantHandler(svc *application.AssistantService, logger *logrus.Logger) *AssistantHandler {
	return &AssistantHandler{Svc: svc, Logger: logger}
}

type summaryRequest struct {
	Summary string `json:"summary"`
}

// Refine POST /api/assist/refine
func (h *AssistantHandler) Refine(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	refined := h.Svc.RefineSummary(c.Request.Context(), req.Summary)
	response.Success(c, http.StatusOK, map[string]any{"summary": refined}, "summary refined", nil)
}

// Suggest POST /api/assist/suggest
func (h *AssistantHandler) Suggest(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	steps := h.Svc.SuggestNextSteps(c.Request.Context(), req.Summary)
	response.Success(c, http.StatusOK, map[string]any{"steps": steps}, "next steps", map[string]any{"count": len(steps)})
}
