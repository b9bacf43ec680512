package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/domain"
	"github.com/quizstage/quizstage-backend/internal/service"
)

// RunHandler handles workflow run HTTP requests
type RunHandler struct {
	service service.RunService
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(service service.RunService) *RunHandler {
	return &RunHandler{service: service}
}

type createRunRequest struct {
	Summary string `json:"summary" binding:"required"`
}

// CreateRun handles POST /api/runs
func (h *RunHandler) CreateRun(c *gin.Context) {
	var req createRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "summary is required", err)
		return
	}

	run, err := h.service.CreateRun(req.Summary)
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: domain.NewRunResponse(run)})
}

// ListRuns handles GET /api/runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	runs, err := h.service.ListRuns()
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	responses := make([]*domain.RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, domain.NewRunResponse(run))
	}
	common.SuccessResponse(c, responses, &common.Meta{Total: int64(len(responses))})
}

// GetRun handles GET /api/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	run, err := h.service.GetRun(c.Param("id"))
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	common.SuccessResponse(c, domain.NewRunResponse(run), nil)
}

// DeleteRun handles DELETE /api/runs/:id
func (h *RunHandler) DeleteRun(c *gin.Context) {
	if err := h.service.DeleteRun(c.Param("id")); err != nil {
		common.FailFromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
