package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/service"
)

// PublishedHandler handles published view HTTP requests
type PublishedHandler struct {
	service service.PublishedService
}

// NewPublishedHandler creates a new PublishedHandler
func NewPublishedHandler(service service.PublishedService) *PublishedHandler {
	return &PublishedHandler{service: service}
}

// ListQuestions handles GET /api/published/questions
func (h *PublishedHandler) ListQuestions(c *gin.Context) {
	runID := c.Query("run_id")

	questions, err := h.service.ListPublished(c.Request.Context(), runID)
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	common.SuccessResponse(c, questions, &common.Meta{
		RunID: runID,
		Total: int64(len(questions)),
	})
}
