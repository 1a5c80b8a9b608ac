package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/internal/pipeline"
	"post-stats-pipeline/pkg/router"
)

func newTestHandlers() (*Handlers, *MockStatsService, *MockMappingService) {
	stats, mappings := new(MockStatsService), new(MockMappingService)
	return NewHandlers(stats, mappings, nil, 1<<20), stats, mappings
}

func uploadRequest(t *testing.T, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "export.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"parse", model.NewEmptyDataError("empty"), http.StatusBadRequest},
		{"validation", &model.ValidationError{}, http.StatusUnprocessableEntity},
		{"mapping conflict", &model.MappingConflictError{Reason: "x"}, http.StatusBadRequest},
		{"quota", model.NewPersistenceError("apply", "", model.ErrQuotaExceeded), http.StatusInsufficientStorage},
		{"other persistence", model.NewPersistenceError("apply", "", errors.New("disk")), http.StatusInternalServerError},
		{"file not found", pipeline.ErrFileNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestImportCSV(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]string
		mockSetup      func(*MockStatsService)
		expectedStatus int
	}{
		{
			name:   "merged import",
			fields: map[string]string{"merge": "true", "name": "Vecka 1"},
			mockSetup: func(s *MockStatsService) {
				s.On("Import", mock.Anything, []byte("a,b\n1,2\n"), pipeline.ImportOptions{
					FileName: "export.csv", Label: "Vecka 1", Merge: true,
				}).Return(&model.ImportResult{RowCount: 1}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "missing columns",
			fields: map[string]string{},
			mockSetup: func(s *MockStatsService) {
				s.On("Import", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, &model.ValidationError{Missing: []model.MissingColumn{{External: "Räckvidd", Internal: model.FieldPostReach}}})
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "bad boolean",
			fields:         map[string]string{"force": "maybe"},
			mockSetup:      func(*MockStatsService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, stats, _ := newTestHandlers()
			tt.mockSetup(stats)

			rr := httptest.NewRecorder()
			h.ImportCSV(rr, uploadRequest(t, "a,b\n1,2\n", tt.fields))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusUnprocessableEntity {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				require.Len(t, resp.MissingColumns, 1)
				assert.Equal(t, "Räckvidd", resp.MissingColumns[0].External)
			}
			stats.AssertExpectations(t)
		})
	}
}

func TestImportCSV_NoFile(t *testing.T) {
	h, _, _ := newTestHandlers()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")

	rr := httptest.NewRecorder()
	h.ImportCSV(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPutMapping(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockMappingService)
		expectedStatus int
	}{
		{
			name: "saved",
			body: `{"mapping":{"Likes":"likes"}}`,
			mockSetup: func(m *MockMappingService) {
				m.On("SaveMapping", mock.Anything, mapping.Mapping{"Likes": "likes"}).Return(nil)
				m.On("GetMapping", mock.Anything).Return(mapping.Mapping{"Likes": "likes"})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty mapping fails validation",
			body:           `{"mapping":{}}`,
			mockSetup:      func(*MockMappingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty header name",
			body:           `{"mapping":{"":"likes"}}`,
			mockSetup:      func(*MockMappingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "conflict from resolver",
			body: `{"mapping":{"Likes":"likes","likes ":"shares"}}`,
			mockSetup: func(m *MockMappingService) {
				m.On("SaveMapping", mock.Anything, mock.Anything).
					Return(&model.MappingConflictError{External: "likes ", Reason: "duplicate header"})
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			body:           `{`,
			mockSetup:      func(*MockMappingService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, mappings := newTestHandlers()
			tt.mockSetup(mappings)

			rr := httptest.NewRecorder()
			h.PutMapping(rr, httptest.NewRequest(http.MethodPut, "/api/v1/mapping", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mappings.AssertExpectations(t)
		})
	}
}

func TestValidateColumns(t *testing.T) {
	h, _, mappings := newTestHandlers()
	mappings.On("ValidateRequiredColumns", []string{"Likes"}).
		Return(mapping.ValidationResult{IsValid: false, MissingColumns: []model.MissingColumn{{External: "Räckvidd"}}})

	rr := httptest.NewRecorder()
	h.ValidateColumns(rr, httptest.NewRequest(http.MethodPost, "/api/v1/mapping/validate", strings.NewReader(`{"headers":["Likes"]}`)))

	assert.Equal(t, http.StatusOK, rr.Code)
	var got mapping.ValidationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.False(t, got.IsValid)
	mappings.AssertExpectations(t)
}

func TestGetAccountView(t *testing.T) {
	view := model.AccountView{
		Rows: []model.GenericRecord{
			{model.FieldAccountID: "A", model.FieldLikes: 1.0},
			{model.FieldAccountID: "B", model.FieldLikes: 5.0},
		},
		Total: model.GenericRecord{model.FieldAccountName: "Totalt", model.FieldLikes: 6.0},
	}

	t.Run("sorted by field", func(t *testing.T) {
		h, stats, _ := newTestHandlers()
		stats.On("AccountView", mock.Anything, []string{model.FieldLikes}).Return(view, nil)

		rr := httptest.NewRecorder()
		h.GetAccountView(rr, httptest.NewRequest(http.MethodGet, "/api/v1/views/accounts?fields=likes&sort=likes&order=desc", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var got model.AccountView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "B", got.Rows[0][model.FieldAccountID])
		stats.AssertExpectations(t)
	})

	t.Run("unknown field", func(t *testing.T) {
		h, stats, _ := newTestHandlers()
		rr := httptest.NewRecorder()
		h.GetAccountView(rr, httptest.NewRequest(http.MethodGet, "/api/v1/views/accounts?fields=likes,bogus", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		stats.AssertNotCalled(t, "AccountView", mock.Anything, mock.Anything)
	})

	t.Run("csv export", func(t *testing.T) {
		h, stats, _ := newTestHandlers()
		stats.On("AccountView", mock.Anything, []string{model.FieldLikes}).Return(view, nil)

		rr := httptest.NewRecorder()
		h.ExportAccountView(rr, httptest.NewRequest(http.MethodGet, "/api/v1/views/accounts/export?format=csv&fields=likes", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Disposition"), ".csv")
		lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "Kontonamn,Användarnamn,Gilla-markeringar", lines[0])
		assert.Equal(t, "Totalt,,6", lines[3])
	})

	t.Run("bad export format", func(t *testing.T) {
		h, _, _ := newTestHandlers()
		rr := httptest.NewRecorder()
		h.ExportAccountView(rr, httptest.NewRequest(http.MethodGet, "/api/v1/views/accounts/export?format=pdf", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetPostTypeView(t *testing.T) {
	h, stats, _ := newTestHandlers()
	stats.On("PostTypeView", mock.Anything, "").Return([]model.PostTypeSummary{{PostType: "Reel", PostCount: 2}}, nil)
	stats.On("AccountNames", mock.Anything).Return([]string{"Acme"}, nil)

	rr := httptest.NewRecorder()
	h.GetPostTypeView(rr, httptest.NewRequest(http.MethodGet, "/api/v1/views/post-types", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "all_accounts", got["account"])
	stats.AssertExpectations(t)
}

func TestRemoveFile(t *testing.T) {
	h, stats, _ := newTestHandlers()
	stats.On("RemoveFile", mock.Anything, "export_csv_1").Return(nil)
	stats.On("RemoveFile", mock.Anything, "missing").Return(pipeline.ErrFileNotFound)

	r := router.New()
	r.DELETE("/api/v1/files/*", h.RemoveFile)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/files/export_csv_1", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/files/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	stats.AssertExpectations(t)
}

func TestClearDataAndUsage(t *testing.T) {
	h, stats, _ := newTestHandlers()
	stats.On("ClearAll", mock.Anything).Return(nil)
	stats.On("Usage", mock.Anything).Return(model.StorageUsage{Status: model.UsageSafe}, nil)

	rr := httptest.NewRecorder()
	h.ClearData(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/data", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.GetUsage(rr, httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"safe"`)

	stats.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestHandlers()
	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	h.HealthCheck = func(ctx context.Context) error { return errors.New("down") }
	rr = httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
