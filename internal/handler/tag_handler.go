package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/service"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	service service.StagingService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(service service.StagingService) *TagHandler {
	return &TagHandler{service: service}
}

// ListTags handles GET /api/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags()
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	common.SuccessResponse(c, tags, &common.Meta{Total: int64(len(tags))})
}
