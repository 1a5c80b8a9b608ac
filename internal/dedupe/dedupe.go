// Package dedupe drops repeated post records inside one import batch.
package dedupe

import (
	"encoding/json"
	"fmt"

	"post-stats-pipeline/internal/accessor"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/pkg/utils"
)

// Result is the outcome of one dedupe pass. Filtered holds the surviving new
// records only, in input order; existing records are never part of it.
type Result struct {
	Filtered []model.GenericRecord
	Stats    model.DedupeStats
}

// Dedupe filters newRecords against existing and against each other.
// Records with a post id are keyed by (post id, file identifier), so the
// same post arriving under a different file identifier is kept. Records
// without a post id fall back to exact structural equality.
func Dedupe(acc *accessor.Accessor, newRecords, existing []model.GenericRecord, fileIdentifier string) Result {
	seen := make(map[string]struct{}, len(existing)+len(newRecords))

	for _, rec := range existing {
		fileID := utils.String(rec[model.FileIdentifierKey])
		seen[recordKey(acc, rec, fileID)] = struct{}{}
	}

	filtered := make([]model.GenericRecord, 0, len(newRecords))
	duplicateIDs := []string{}

	for _, rec := range newRecords {
		key := recordKey(acc, rec, fileIdentifier)
		if _, dup := seen[key]; dup {
			if id := acc.Text(rec, model.FieldPostID); id != "" {
				duplicateIDs = append(duplicateIDs, id)
			}
			continue
		}
		seen[key] = struct{}{}
		filtered = append(filtered, rec)
	}

	return Result{
		Filtered: filtered,
		Stats: model.DedupeStats{
			TotalRows:    len(existing) + len(newRecords),
			Duplicates:   len(newRecords) - len(filtered),
			DuplicateIDs: duplicateIDs,
		},
	}
}

func recordKey(acc *accessor.Accessor, rec model.GenericRecord, fileIdentifier string) string {
	if id := acc.Text(rec, model.FieldPostID); id != "" {
		return "id:" + id + "|" + fileIdentifier
	}
	return "rec:" + structuralKey(rec)
}

// structuralKey serializes the whole record. encoding/json sorts map keys,
// so equal records always produce equal keys.
func structuralKey(rec model.GenericRecord) string {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Sprintf("%v", map[string]interface{}(rec))
	}
	return string(raw)
}
