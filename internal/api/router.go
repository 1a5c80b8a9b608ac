package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"post-stats-pipeline/internal/api/handler"
	"post-stats-pipeline/pkg/router"

	_ "post-stats-pipeline/docs"
)

func RegisterRoutes(r *router.Router, h *handler.Handlers) {
	r.GET("/health", h.Health)

	r.POST("/api/v1/imports", h.ImportCSV)

	r.GET("/api/v1/mapping", h.GetMapping)
	r.PUT("/api/v1/mapping", h.PutMapping)
	r.GET("/api/v1/mapping/defaults", h.GetMappingDefaults)
	r.POST("/api/v1/mapping/validate", h.ValidateColumns)
	r.POST("/api/v1/mapping/reset", h.ResetMapping)

	r.GET("/api/v1/views/accounts", h.GetAccountView)
	r.GET("/api/v1/views/accounts/export", h.ExportAccountView)
	r.GET("/api/v1/views/posts", h.GetPostView)
	r.GET("/api/v1/views/post-types", h.GetPostTypeView)

	r.GET("/api/v1/files", h.ListFiles)
	r.DELETE("/api/v1/files/*", h.RemoveFile)
	r.DELETE("/api/v1/data", h.ClearData)
	r.GET("/api/v1/usage", h.GetUsage)

	r.GET("/swagger/*", httpSwagger.WrapHandler.ServeHTTP)
}
