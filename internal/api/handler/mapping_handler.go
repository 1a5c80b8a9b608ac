package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"post-stats-pipeline/internal/mapping"
)

type mappingRequest struct {
	Mapping map[string]string `json:"mapping" validate:"required,min=1,dive,keys,required,endkeys"`
}

type validateColumnsRequest struct {
	Headers []string `json:"headers" validate:"required,min=1"`
}

// MappingResponse is the current mapping as a map and as ordered columns.
type MappingResponse struct {
	Mapping mapping.Mapping  `json:"mapping"`
	Columns []mapping.Column `json:"columns"`
}

func newMappingResponse(m mapping.Mapping) MappingResponse {
	cols := make([]mapping.Column, 0, len(m))
	for ext, internal := range m {
		cols = append(cols, mapping.Column{External: ext, Internal: internal})
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].External < cols[j].External })
	return MappingResponse{Mapping: m, Columns: cols}
}

// GetMapping returns the active column mapping
// @Summary Get column mapping
// @Tags mapping
// @Produce json
// @Success 200 {object} MappingResponse
// @Router /mapping [get]
func (h *Handlers) GetMapping(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, newMappingResponse(h.Mappings.GetMapping(r.Context())), http.StatusOK)
}

// PutMapping replaces the column mapping
// @Summary Replace column mapping
// @Tags mapping
// @Accept json
// @Produce json
// @Param mapping body mappingRequest true "External header -> internal field"
// @Success 200 {object} MappingResponse
// @Failure 400 {object} ErrorResponse "Empty or conflicting mapping"
// @Router /mapping [put]
func (h *Handlers) PutMapping(w http.ResponseWriter, r *http.Request) {
	var req mappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Mappings.SaveMapping(r.Context(), mapping.Mapping(req.Mapping)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, newMappingResponse(h.Mappings.GetMapping(r.Context())), http.StatusOK)
}

// ResetMapping restores the default mapping
// @Summary Reset column mapping
// @Tags mapping
// @Produce json
// @Success 200 {object} MappingResponse
// @Router /mapping/reset [post]
func (h *Handlers) ResetMapping(w http.ResponseWriter, r *http.Request) {
	if err := h.Mappings.ResetMapping(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, newMappingResponse(h.Mappings.GetMapping(r.Context())), http.StatusOK)
}

// GetMappingDefaults lists the built-in tables
// @Summary Default columns, display names and column groups
// @Tags mapping
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /mapping/defaults [get]
func (h *Handlers) GetMappingDefaults(w http.ResponseWriter, r *http.Request) {
	alternatives := make(map[string][]string)
	for _, c := range mapping.DefaultColumns() {
		alternatives[c.Internal] = mapping.AlternativeNames(c.Internal)
	}
	writeSuccess(w, map[string]interface{}{
		"columns":          mapping.DefaultColumns(),
		"displayNames":     mapping.DisplayNames(),
		"columnGroups":     mapping.ColumnGroups(),
		"alternativeNames": alternatives,
	}, http.StatusOK)
}

// ValidateColumns checks headers against the required columns
// @Summary Validate CSV headers
// @Tags mapping
// @Accept json
// @Produce json
// @Param headers body validateColumnsRequest true "CSV header row"
// @Success 200 {object} mapping.ValidationResult
// @Failure 400 {object} ErrorResponse
// @Router /mapping/validate [post]
func (h *Handlers) ValidateColumns(w http.ResponseWriter, r *http.Request) {
	var req validateColumnsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeSuccess(w, h.Mappings.ValidateRequiredColumns(req.Headers), http.StatusOK)
}
