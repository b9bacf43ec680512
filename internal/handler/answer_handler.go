package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/service"
)

// AnswerHandler handles staging answer HTTP requests
type AnswerHandler struct {
	service service.StagingService
}

// NewAnswerHandler creates a new AnswerHandler
func NewAnswerHandler(service service.StagingService) *AnswerHandler {
	return &AnswerHandler{service: service}
}

// GenerateAnswers handles POST /api/runs/:id/generate-answers
func (h *AnswerHandler) GenerateAnswers(c *gin.Context) {
	answers, err := h.service.GenerateAnswers(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: answers})
}

// ListAnswers handles GET /api/runs/:id/answers
func (h *AnswerHandler) ListAnswers(c *gin.Context) {
	answers, err := h.service.ListAnswers(c.Param("id"))
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	common.SuccessResponse(c, answers, &common.Meta{Total: int64(len(answers))})
}

// UpdateApproval handles PATCH /api/answers/:id/approval
func (h *AnswerHandler) UpdateApproval(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid answer id", err)
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "approved is required", err)
		return
	}

	answer, err := h.service.SetAnswerApproval(id, *req.Approved)
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	common.SuccessResponse(c, answer, nil)
}
