package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/internal/pipeline"
)

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Import(ctx context.Context, csv []byte, opts pipeline.ImportOptions) (*model.ImportResult, error) {
	args := m.Called(ctx, csv, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportResult), args.Error(1)
}

func (m *MockStatsService) Files(ctx context.Context) ([]model.FileMetadata, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.FileMetadata), args.Error(1)
}

func (m *MockStatsService) RemoveFile(ctx context.Context, fileIdentifier string) error {
	return m.Called(ctx, fileIdentifier).Error(0)
}

func (m *MockStatsService) ClearAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStatsService) AccountView(ctx context.Context, fields []string) (model.AccountView, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(model.AccountView), args.Error(1)
}

func (m *MockStatsService) PostTypeView(ctx context.Context, account string) ([]model.PostTypeSummary, error) {
	args := m.Called(ctx, account)
	return args.Get(0).([]model.PostTypeSummary), args.Error(1)
}

func (m *MockStatsService) PostView(ctx context.Context) ([]model.GenericRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.GenericRecord), args.Error(1)
}

func (m *MockStatsService) AccountNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStatsService) Usage(ctx context.Context) (model.StorageUsage, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.StorageUsage), args.Error(1)
}

type MockMappingService struct {
	mock.Mock
}

func (m *MockMappingService) GetMapping(ctx context.Context) mapping.Mapping {
	return m.Called(ctx).Get(0).(mapping.Mapping)
}

func (m *MockMappingService) SaveMapping(ctx context.Context, mp mapping.Mapping) error {
	return m.Called(ctx, mp).Error(0)
}

func (m *MockMappingService) ResetMapping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMappingService) ValidateRequiredColumns(headers []string) mapping.ValidationResult {
	return m.Called(headers).Get(0).(mapping.ValidationResult)
}
