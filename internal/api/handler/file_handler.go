package handler

import (
	"context"
	"net/http"

	"post-stats-pipeline/pkg/router"
)

// ListFiles lists the imported files
// @Summary List imported files
// @Tags files
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /files [get]
func (h *Handlers) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.Stats.Files(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"files": files,
		"count": len(files),
	}, http.StatusOK)
}

// RemoveFile drops one imported file and its posts
// @Summary Remove an imported file
// @Tags files
// @Produce json
// @Param id path string true "File identifier"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /files/{id} [delete]
func (h *Handlers) RemoveFile(w http.ResponseWriter, r *http.Request) {
	fileID := router.Wildcard(r)
	if fileID == "" {
		writeError(w, "File identifier is required", http.StatusBadRequest)
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if err := h.Stats.RemoveFile(r.Context(), fileID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"message":        "File removed",
		"fileIdentifier": fileID,
	}, http.StatusOK)
}

// ClearData removes all imported data
// @Summary Clear all data
// @Description Removes posts, account rollups and the file list. The column mapping is kept.
// @Tags files
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /data [delete]
func (h *Handlers) ClearData(w http.ResponseWriter, r *http.Request) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if err := h.Stats.ClearAll(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"message": "All data cleared"}, http.StatusOK)
}

// GetUsage reports storage usage
// @Summary Storage usage
// @Tags files
// @Produce json
// @Success 200 {object} model.StorageUsage
// @Router /usage [get]
func (h *Handlers) GetUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.Stats.Usage(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, usage, http.StatusOK)
}

// Health reports service health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.HealthCheck != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.HealthCheck(ctx); err != nil {
			writeError(w, "Database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	writeSuccess(w, map[string]interface{}{"status": "ok"}, http.StatusOK)
}
