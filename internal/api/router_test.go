package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"post-stats-pipeline/internal/api/handler"
	"post-stats-pipeline/pkg/router"
)

func TestRegisterRoutes(t *testing.T) {
	r := router.New()
	RegisterRoutes(r, handler.NewHandlers(nil, nil, nil, 0))

	for _, key := range []string{
		"POST:/api/v1/imports",
		"GET:/api/v1/mapping",
		"PUT:/api/v1/mapping",
		"GET:/api/v1/mapping/defaults",
		"POST:/api/v1/mapping/validate",
		"GET:/api/v1/views/accounts",
		"GET:/api/v1/views/accounts/export",
		"GET:/api/v1/views/posts",
		"GET:/api/v1/views/post-types",
		"GET:/api/v1/files",
		"DELETE:/api/v1/files/*",
		"DELETE:/api/v1/data",
		"GET:/api/v1/usage",
		"GET:/health",
		"GET:/swagger/*",
	} {
		assert.Contains(t, r.Routes(), key)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/mapping/defaults", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Publicerings-id")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Post Stats Pipeline API")
}
