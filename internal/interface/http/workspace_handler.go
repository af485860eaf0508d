package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/pkg/response"
	"github.com/easyworldradio/workspace7/pkg/validation"
)

// WorkspaceHandler serves the workspace CRUD, board and resource
// endpoints. All routes are behind auth; userID comes from context.
type WorkspaceHandler struct {
	Svc    *application.WorkspaceService
	Logger *logrus.Logger
}

func NewWorkspaceHandler(svc *application.WorkspaceService, logger *logrus.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{Svc: svc, Logger: logger}
}

// List GET /api/workspaces?q=
func (h *WorkspaceHandler) List(c *gin.Context) {
	uid := c.GetString("userID")
	list, err := h.Svc.ListForUser(c.Request.Context(), uid, c.Query("q"))
	if err != nil {
		response.Error[any](c, statusFor(err), "failed to list workspaces", nil)
		return
	}
	response.Success(c, http.StatusOK, list, "workspaces", map[string]any{"count": len(list)})
}

// Create POST /api/workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")
	w, err := h.Svc.Create(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusCreated, w, "workspace created", nil)
}

// Get GET /api/workspaces/:id
func (h *WorkspaceHandler) Get(c *gin.Context) {
	uid := c.GetString("userID")
	w, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		response.Error[any](c, statusFor(err), "workspace not found", nil)
		return
	}
	response.Success(c, http.StatusOK, w, "workspace", nil)
}

// Title is free text and may be blank; clearing it is a valid edit.
type updateWorkspaceRequest struct {
	Title         string                `json:"title"`
	Summary       string                `json:"summary"`
	ProgressSteps []entity.ProgressStep `json:"progressSteps"`
	Resources     []entity.Resource     `json:"resources"`
}

// Update PUT /api/workspaces/:id
//
// The stored record is replaced wholesale; there is no field-level
// patch. Owner, collaborators and invite code are immutable and carried
// over server-side.
func (h *WorkspaceHandler) Update(c *gin.Context) {
	var req updateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString("userID")
	w := &entity.Workspace{
		ID:            c.Param("id"),
		Title:         req.Title,
		Summary:       req.Summary,
		ProgressSteps: req.ProgressSteps,
		Resources:     req.Resources,
	}
	if w.ProgressSteps == nil {
		w.ProgressSteps = []entity.ProgressStep{}
	}
	if w.Resources == nil {
		w.Resources = []entity.Resource{}
	}
	// resync the denormalized completion flags on whole-record writes
	for i := range w.ProgressSteps {
		w.ProgressSteps[i].SetStatus(w.ProgressSteps[i].Status)
	}
	updated, err := h.Svc.Update(c.Request.Context(), uid, w)
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, updated, "workspace updated", nil)
}

// Delete DELETE /api/workspaces/:id
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "workspace deleted", nil)
}

type addStepRequest struct {
	Text      string                `json:"text" binding:"required"`
	Note      string                `json:"note"`
	Status    entity.ProgressStatus `json:"status" binding:"required,oneof=todo in-progress done"`
	StartDate string                `json:"startDate"`
	DueDate   string                `json:"dueDate"`
}

// AddStep POST /api/workspaces/:id/steps
func (h *WorkspaceHandler) AddStep(c *gin.Context) {
	var req addStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString("userID")
	step := entity.ProgressStep{
		Text:      req.Text,
		Note:      req.Note,
		Status:    req.Status,
		StartDate: req.StartDate,
		DueDate:   req.DueDate,
	}
	w, err := h.Svc.AddStep(c.Request.Context(), uid, c.Param("id"), step)
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusCreated, w, "step added", nil)
}

type setStatusRequest struct {
	Status entity.ProgressStatus `json:"status" binding:"required,oneof=todo in-progress done"`
}

// SetStepStatus PUT /api/workspaces/:id/steps/:stepID/status
func (h *WorkspaceHandler) SetStepStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString("userID")
	w, err := h.Svc.SetStepStatus(c.Request.Context(), uid, c.Param("id"), c.Param("stepID"), req.Status)
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, w, "step moved", nil)
}

// ToggleStep POST /api/workspaces/:id/steps/:stepID/toggle
func (h *WorkspaceHandler) ToggleStep(c *gin.Context) {
	uid := c.GetString("userID")
	w, err := h.Svc.ToggleStep(c.Request.Context(), uid, c.Param("id"), c.Param("stepID"))
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, w, "step toggled", nil)
}

type resourceRequest struct {
	Name  string   `json:"name" binding:"required"`
	Note  string   `json:"note"`
	Price string   `json:"price"`
	Links []string `json:"links"`
}

// AddResource POST /api/workspaces/:id/resources
func (h *WorkspaceHandler) AddResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString("userID")
	res := entity.Resource{Name: req.Name, Note: req.Note, Price: req.Price, Links: req.Links}
	w, err := h.Svc.AddResource(c.Request.Context(), uid, c.Param("id"), res)
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusCreated, w, "resource added", nil)
}

// UpdateResource PUT /api/workspaces/:id/resources/:resID
func (h *WorkspaceHandler) UpdateResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString("userID")
	res := entity.Resource{ID: c.Param("resID"), Name: req.Name, Note: req.Note, Price: req.Price, Links: req.Links}
	w, err := h.Svc.UpdateResource(c.Request.Context(), uid, c.Param("id"), res)
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, w, "resource updated", nil)
}

// RemoveResource DELETE /api/workspaces/:id/resources/:resID
func (h *WorkspaceHandler) RemoveResource(c *gin.Context) {
	uid := c.GetString("userID")
	w, err := h.Svc.RemoveResource(c.Request.Context(), uid, c.Param("id"), c.Param("resID"))
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, w, "resource removed", nil)
}

// Search GET /api/workspaces/search?q=&size=
func (h *WorkspaceHandler) Search(c *gin.Context) {
	uid := c.GetString("userID")
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), uid, c.Query("q"), size)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// Export POST /api/workspaces/:id/export
func (h *WorkspaceHandler) Export(c *gin.Context) {
	uid := c.GetString("userID")
	url, err := h.Svc.Export(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, map[string]any{"url": url}, "workspace exported", nil)
}
