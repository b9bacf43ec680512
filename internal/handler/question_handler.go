package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/service"
)

// QuestionHandler handles staging question HTTP requests
type QuestionHandler struct {
	service service.StagingService
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(service service.StagingService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

type approvalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

type tagsRequest struct {
	TagNames []string `json:"tag_names"`
}

// GenerateQuestions handles POST /api/runs/:id/generate-questions
func (h *QuestionHandler) GenerateQuestions(c *gin.Context) {
	count := 5
	if n, err := strconv.Atoi(c.Query("count")); err == nil && n > 0 {
		count = n
	}

	questions, err := h.service.GenerateQuestions(c.Request.Context(), c.Param("id"), count)
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: questions})
}

// ListQuestions handles GET /api/runs/:id/questions
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.service.ListQuestions(c.Param("id"))
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	common.SuccessResponse(c, questions, &common.Meta{Total: int64(len(questions))})
}

// UpdateApproval handles PATCH /api/questions/:id/approval
func (h *QuestionHandler) UpdateApproval(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid question id", err)
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "approved is required", err)
		return
	}

	question, err := h.service.SetQuestionApproval(id, *req.Approved)
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	common.SuccessResponse(c, question, nil)
}

// GetTags handles GET /api/questions/:id/tags
func (h *QuestionHandler) GetTags(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid question id", err)
		return
	}

	tags, err := h.service.GetQuestionTags(id)
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	common.SuccessResponse(c, tags, nil)
}

// UpdateTags handles PUT /api/questions/:id/tags
func (h *QuestionHandler) UpdateTags(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid question id", err)
		return
	}

	var req tagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "tag_names is required", err)
		return
	}

	tags, err := h.service.SetQuestionTags(id, req.TagNames)
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	common.SuccessResponse(c, tags, nil)
}
