package handler

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/internal/pipeline"
)

// StatsService is the import coordinator as the handlers see it.
type StatsService interface {
	Import(ctx context.Context, csv []byte, opts pipeline.ImportOptions) (*model.ImportResult, error)
	Files(ctx context.Context) ([]model.FileMetadata, error)
	RemoveFile(ctx context.Context, fileIdentifier string) error
	ClearAll(ctx context.Context) error
	AccountView(ctx context.Context, fields []string) (model.AccountView, error)
	PostTypeView(ctx context.Context, account string) ([]model.PostTypeSummary, error)
	PostView(ctx context.Context) ([]model.GenericRecord, error)
	AccountNames(ctx context.Context) ([]string, error)
	Usage(ctx context.Context) (model.StorageUsage, error)
}

// MappingService owns the column mapping.
type MappingService interface {
	GetMapping(ctx context.Context) mapping.Mapping
	SaveMapping(ctx context.Context, m mapping.Mapping) error
	ResetMapping(ctx context.Context) error
	ValidateRequiredColumns(headers []string) mapping.ValidationResult
}

type Handlers struct {
	Stats         StatsService
	Mappings      MappingService
	HealthCheck   func(ctx context.Context) error
	MaxUploadSize int64
	Validate      *validator.Validate

	// writeMu serializes imports and removals against the dataset.
	writeMu sync.Mutex
}

const (
	defaultMaxUploadSize = 20 << 20
	healthTimeout        = 2 * time.Second
)

func NewHandlers(stats StatsService, mappings MappingService, healthCheck func(ctx context.Context) error, maxUploadSize int64) *Handlers {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	return &Handlers{
		Stats:         stats,
		Mappings:      mappings,
		HealthCheck:   healthCheck,
		MaxUploadSize: maxUploadSize,
		Validate:      NewValidator(),
	}
}

// NewValidator returns a validator that also knows the account_field tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("account_field", func(fl validator.FieldLevel) bool {
		field := fl.Field().String()
		for _, f := range model.AccountFields {
			if f == field {
				return true
			}
		}
		return false
	})
	return v
}
