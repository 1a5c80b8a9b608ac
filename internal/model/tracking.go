package model

import "time"

// FileMetadata tracks one imported file.
type FileMetadata struct {
	Filename          string    `json:"filename"`
	OriginalFileName  string    `json:"originalFileName"`
	FileIdentifier    string    `json:"fileIdentifier"`
	RowCount          int       `json:"rowCount"`
	DuplicatesRemoved int       `json:"duplicatesRemoved"`
	AccountCount      int       `json:"accountCount"`
	DateRange         DateRange `json:"dateRange"`
	UploadedAt        time.Time `json:"uploadedAt"`
}

// Storage usage status levels
const (
	UsageSafe     = "safe"
	UsageWarning  = "warning"
	UsageCritical = "critical"
)

// StorageUsage is an estimate of how much of the store's capacity the
// dataset occupies.
type StorageUsage struct {
	TotalSize       int64   `json:"totalSize"`
	TotalSizeHuman  string  `json:"totalSizeHuman"`
	PostViewSize    int64   `json:"postViewSize"`
	AccountViewSize int64   `json:"accountViewSize"`
	MetadataSize    int64   `json:"metadataSize"`
	PercentUsed     float64 `json:"percentUsed"`
	Status          string  `json:"status"`
	CanAddMoreData  bool    `json:"canAddMoreData"`
	IsNearLimit     bool    `json:"isNearLimit"`
	PostsInBlob     bool    `json:"postsInBlob"`
}
