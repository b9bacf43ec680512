package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/service"
)

// SyncHandler handles sync HTTP requests
type SyncHandler struct {
	service service.SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(service service.SyncService) *SyncHandler {
	return &SyncHandler{service: service}
}

// Sync handles POST /api/runs/:id/sync
func (h *SyncHandler) Sync(c *gin.Context) {
	result, err := h.service.Sync(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.FailFromError(c, err)
		return
	}

	common.SuccessResponse(c, result, nil)
}
