package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/twinlabs/persona-backend/internal/http/response"
	"github.com/twinlabs/persona-backend/internal/services"
)

type GraphHandler struct {
	backfill services.GraphBackfillService
	extract  services.GraphExtractService
}

func NewGraphHandler(backfill services.GraphBackfillService, extract services.GraphExtractService) *GraphHandler {
	return &GraphHandler{backfill: backfill, extract: extract}
}

type backfillReq struct {
	ProfileID string `json:"profile_id"`
	BatchSize int    `json:"batch_size"`
}

// POST /api/graph/backfill
func (h *GraphHandler) RunBackfill(c *gin.Context) {
	var req backfillReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.backfill.RunBatch(c.Request.Context(), req.ProfileID, req.BatchSize)
	if err != nil {
		response.RespondAPIError(c, err, "backfill_failed")
		return
	}
	if out.Completed {
		response.RespondOK(c, gin.H{
			"success":   true,
			"completed": true,
			"counts":    out.Counts,
		})
		return
	}
	response.RespondOK(c, gin.H{
		"success":   true,
		"completed": false,
		"selected":  out.Selected,
		"stats":     out.Stats,
	})
}

// GET /api/graph/backfill/last?profile_id=...
func (h *GraphHandler) LastBackfill(c *gin.Context) {
	profileID := c.Query("profile_id")
	rec, err := h.backfill.LastRun(c.Request.Context(), profileID)
	if err != nil {
		response.RespondAPIError(c, err, "last_backfill_failed")
		return
	}
	if rec == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("no backfill record for profile"))
		return
	}
	response.RespondOK(c, gin.H{"success": true, "last_run": rec})
}

type extractReq struct {
	ProfileID   string   `json:"profile_id"`
	DocumentIDs []string `json:"document_ids"`
}

// POST /internal/graph/extract
func (h *GraphHandler) ExtractBatch(c *gin.Context) {
	var req extractReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.extract.ExtractBatch(c.Request.Context(), req.ProfileID, req.DocumentIDs)
	if err != nil {
		response.RespondAPIError(c, err, "extract_failed")
		return
	}
	response.RespondOK(c, gin.H{"success": true, "stats": out})
}
