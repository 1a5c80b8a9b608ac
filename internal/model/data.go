package model

import "time"

// DateRange is the span of resolvable publish dates, formatted YYYY-MM-DD.
// Both ends are empty when no date could be resolved.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// DedupeStats reports what the deduplication pass did.
type DedupeStats struct {
	TotalRows    int      `json:"totalRows"`
	Duplicates   int      `json:"duplicates"`
	DuplicateIDs []string `json:"duplicateIds"`
}

// ParseWarning is a non-fatal issue found while reading the CSV.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportMeta describes one import call.
type ImportMeta struct {
	ProcessedAt    time.Time      `json:"processedAt"`
	Stats          DedupeStats    `json:"stats"`
	DateRange      DateRange      `json:"dateRange"`
	IsMergedData   bool           `json:"isMergedData"`
	Filename       string         `json:"filename"`
	FileIdentifier string         `json:"fileIdentifier"`
	Warnings       []ParseWarning `json:"warnings,omitempty"`
}

// ImportResult is returned to the caller after a committed import.
type ImportResult struct {
	AccountViewData []GenericRecord `json:"accountViewData"`
	PostViewData    []GenericRecord `json:"postViewData"`
	RowCount        int             `json:"rowCount"`
	Meta            ImportMeta      `json:"meta"`
}

// Rows returns the post records, the flat rows views and exports read.
func (r *ImportResult) Rows() []GenericRecord {
	return r.PostViewData
}

// AccountView is the per-account rollup table with its total row.
type AccountView struct {
	Rows            []GenericRecord `json:"rows"`
	Total           GenericRecord   `json:"total"`
	UnassignedPosts int             `json:"unassigned_posts"`
}

// MetricStat holds the mean and sum of one metric inside a post type group.
type MetricStat struct {
	Mean float64 `json:"mean"`
	Sum  float64 `json:"sum"`
}

// PostTypeSummary is one row of the per-post-type view.
type PostTypeSummary struct {
	PostType   string                `json:"post_type"`
	PostCount  int                   `json:"post_count"`
	Percentage float64               `json:"percentage"`
	IsReliable bool                  `json:"is_reliable"`
	Metrics    map[string]MetricStat `json:"metrics"`
}
