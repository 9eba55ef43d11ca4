package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/pagination"
	"gagyebu/internal/services"
)

// SyncHandler handles sync requests
type SyncHandler struct {
	syncService    services.SyncServicer
	syncRunService services.SyncRunServicer
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService services.SyncServicer, syncRunService services.SyncRunServicer) *SyncHandler {
	return &SyncHandler{syncService: syncService, syncRunService: syncRunService}
}

// SyncHousehold pulls both members' newest exports
func (h *SyncHandler) SyncHousehold(c *gin.Context) {
	writeSyncResult(c, h.syncService.SyncHousehold(c.Request.Context()))
}

// SyncMine pulls only the caller's newest export
func (h *SyncHandler) SyncMine(c *gin.Context) {
	_, role, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	writeSyncResult(c, h.syncService.SyncMember(c.Request.Context(), role))
}

// ListRuns returns the sync ledger, newest first
func (h *SyncHandler) ListRuns(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	runs, err := h.syncRunService.Recent(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}

// LatestRun returns the caller's last sync attempt
func (h *SyncHandler) LatestRun(c *gin.Context) {
	email, _, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	run, err := h.syncRunService.Latest(c.Request.Context(), email)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run})
}

func writeSyncResult(c *gin.Context, res services.SyncResult) {
	status := res.StatusCode
	if status == 0 {
		status = http.StatusOK
		if !res.Success {
			status = http.StatusInternalServerError
		}
	}
	c.JSON(status, gin.H{"result": res})
}
