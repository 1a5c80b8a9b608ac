package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"post-stats-pipeline/internal/pipeline"
)

type importRequest struct {
	FileName string `validate:"required,max=255"`
	Label    string `validate:"max=255"`
	Merge    bool
	Force    bool
}

func formBool(r *http.Request, name string) (bool, error) {
	v := r.FormValue(name)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// ImportCSV imports an uploaded Meta export
// @Summary Import a CSV export
// @Description Parse, deduplicate and aggregate an uploaded CSV. With merge=true the posts are added to the current dataset, otherwise they replace it.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV export"
// @Param merge formData boolean false "Merge with the existing dataset"
// @Param force formData boolean false "Import even when required columns are missing"
// @Param name formData string false "Label shown in the file list"
// @Success 200 {object} model.ImportResult
// @Failure 400 {object} ErrorResponse "Unreadable or empty CSV"
// @Failure 422 {object} ErrorResponse "Required columns missing"
// @Failure 507 {object} ErrorResponse "Storage quota exceeded"
// @Router /imports [post]
func (h *Handlers) ImportCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)
	if err := r.ParseMultipartForm(h.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, "Upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, "File is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	merge, err := formBool(r, "merge")
	if err != nil {
		writeError(w, "merge must be a boolean", http.StatusBadRequest)
		return
	}
	force, err := formBool(r, "force")
	if err != nil {
		writeError(w, "force must be a boolean", http.StatusBadRequest)
		return
	}

	req := importRequest{FileName: header.Filename, Label: r.FormValue("name"), Merge: merge, Force: force}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	result, err := h.Stats.Import(r.Context(), data, pipeline.ImportOptions{
		FileName: req.FileName,
		Label:    req.Label,
		Merge:    req.Merge,
		Force:    req.Force,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, result, http.StatusOK)
}
