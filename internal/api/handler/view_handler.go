package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"post-stats-pipeline/internal/aggregate"
	"post-stats-pipeline/internal/export"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/pkg/utils"
)

type accountViewQuery struct {
	Fields []string `validate:"dive,account_field"`
	Sort   string   `validate:"omitempty,account_field"`
	Order  string   `validate:"omitempty,oneof=asc desc"`
	Format string   `validate:"omitempty,oneof=csv json xlsx"`
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (h *Handlers) parseAccountQuery(r *http.Request) (accountViewQuery, error) {
	q := r.URL.Query()
	req := accountViewQuery{
		Fields: splitList(q.Get("fields")),
		Sort:   q.Get("sort"),
		Order:  strings.ToLower(q.Get("order")),
		Format: strings.ToLower(q.Get("format")),
	}
	return req, h.Validate.Struct(req)
}

func (h *Handlers) accountView(r *http.Request, req accountViewQuery) (model.AccountView, error) {
	view, err := h.Stats.AccountView(r.Context(), req.Fields)
	if err != nil {
		return view, err
	}
	if req.Sort != "" {
		view.Rows = aggregate.SortRows(view.Rows, req.Sort, req.Order == "asc")
	}
	return view, nil
}

// GetAccountView returns the per-account table
// @Summary Account view
// @Description Per-account sums and derived metrics for the selected fields, plus a total row.
// @Tags views
// @Produce json
// @Param fields query string false "Comma separated field identifiers"
// @Param sort query string false "Field to sort by"
// @Param order query string false "asc or desc"
// @Success 200 {object} model.AccountView
// @Failure 400 {object} ErrorResponse
// @Router /views/accounts [get]
func (h *Handlers) GetAccountView(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseAccountQuery(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.accountView(r, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, view, http.StatusOK)
}

// ExportAccountView downloads the account table
// @Summary Export account view
// @Tags views
// @Produce text/csv
// @Produce application/json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv, json or xlsx"
// @Param fields query string false "Comma separated field identifiers"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /views/accounts/export [get]
func (h *Handlers) ExportAccountView(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseAccountQuery(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.accountView(r, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	fields := req.Fields
	if len(fields) == 0 {
		fields = model.AccountFields
	}
	rows := append(append([]model.GenericRecord{}, view.Rows...), view.Total)

	name := utils.NewOutputManager("").DefaultFileName("konton", format, time.Now())
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := export.Write(w, format, rows, export.AccountColumns(fields)); err != nil {
		writeError(w, "Export failed", http.StatusInternalServerError)
	}
}

// GetPostView returns the post records
// @Summary Post view
// @Tags views
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /views/posts [get]
func (h *Handlers) GetPostView(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Stats.PostView(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"posts": posts,
		"count": len(posts),
	}, http.StatusOK)
}

// GetPostTypeView summarizes posts per post type
// @Summary Post type view
// @Tags views
// @Produce json
// @Param account query string false "Account name filter, all_accounts for none"
// @Success 200 {object} map[string]interface{}
// @Router /views/post-types [get]
func (h *Handlers) GetPostTypeView(w http.ResponseWriter, r *http.Request) {
	account := r.URL.Query().Get("account")

	summaries, err := h.Stats.PostTypeView(r.Context(), account)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	names, err := h.Stats.AccountNames(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if account == "" {
		account = aggregate.AllAccounts
	}
	writeSuccess(w, map[string]interface{}{
		"account":   account,
		"accounts":  names,
		"summaries": summaries,
	}, http.StatusOK)
}
