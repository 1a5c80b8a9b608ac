package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OutputManager places export files under one base directory.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	if baseOutputDir == "" {
		baseOutputDir = "exports"
	}
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// EnsureOutputDirExists ensures the base output directory exists
func (om *OutputManager) EnsureOutputDirExists() error {
	return os.MkdirAll(om.BaseOutputDir, 0755)
}

// OutputFilePath returns the full path for an export file. Any directory
// part of fileName is dropped.
func (om *OutputManager) OutputFilePath(fileName string) (string, error) {
	if err := om.EnsureOutputDirExists(); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return filepath.Join(om.BaseOutputDir, filepath.Base(fileName)), nil
}

// DefaultFileName builds a timestamped export name such as
// konton_2024-05-01_15-04-05.csv.
func (om *OutputManager) DefaultFileName(prefix, fileType string, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeIdentifier(prefix), at.Format("2006-01-02_15-04-05"), fileType)
}

// GetFileType determines the file type based on extension
func (om *OutputManager) GetFileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".xlsx":
		return "xlsx"
	default:
		return "unknown"
	}
}

// GetFileSize returns the size of a file in bytes
func (om *OutputManager) GetFileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
