package dedupe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-stats-pipeline/internal/accessor"
	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/model"
)

func newAccessor() *accessor.Accessor {
	return accessor.New(mapping.DefaultMapping().Inverse())
}

func rawRow(postID string, likes int) model.GenericRecord {
	return model.GenericRecord{
		"Publicerings-id":   postID,
		"Konto-id":          "acc-1",
		"Gilla-markeringar": fmt.Sprint(likes),
	}
}

func TestDedupe_WithinBatch(t *testing.T) {
	const n, k = 10, 4
	var rows []model.GenericRecord
	for i := 0; i < n-k; i++ {
		rows = append(rows, rawRow(fmt.Sprintf("p%d", i), i))
	}
	for i := 0; i < k; i++ {
		rows = append(rows, rawRow("same", i))
	}

	res := Dedupe(newAccessor(), rows, nil, "file_a_1")

	assert.Len(t, res.Filtered, n-k+1)
	assert.Equal(t, k-1, res.Stats.Duplicates)
	assert.Equal(t, n, res.Stats.TotalRows)
	assert.Equal(t, []string{"same", "same", "same"}, res.Stats.DuplicateIDs)
	assert.Equal(t, "0", res.Filtered[n-k]["Gilla-markeringar"], "first occurrence survives")
}

func TestDedupe_DifferentFileIdentifierIsDistinct(t *testing.T) {
	acc := newAccessor()
	rows := []model.GenericRecord{rawRow("p1", 1), rawRow("p2", 2)}

	first := Dedupe(acc, rows, nil, "report_csv_1000")
	require.Len(t, first.Filtered, 2)

	var existing []model.GenericRecord
	for _, rec := range first.Filtered {
		mapped := mapping.DefaultMapping().MapRecord(rec)
		mapped[model.FileIdentifierKey] = "report_csv_1000"
		existing = append(existing, mapped)
	}

	second := Dedupe(acc, rows, existing, "report_csv_2000")
	assert.Len(t, second.Filtered, 2)
	assert.Zero(t, second.Stats.Duplicates)
	assert.Equal(t, 4, second.Stats.TotalRows)
}

func TestDedupe_SameFileIdentifierAgainstExisting(t *testing.T) {
	existing := []model.GenericRecord{{
		model.FieldPostID:       "p1",
		model.FileIdentifierKey: "f1",
	}}

	res := Dedupe(newAccessor(), []model.GenericRecord{rawRow("p1", 3), rawRow("p2", 1)}, existing, "f1")

	require.Len(t, res.Filtered, 1)
	assert.Equal(t, "p2", res.Filtered[0]["Publicerings-id"])
	assert.Equal(t, []string{"p1"}, res.Stats.DuplicateIDs)
}

func TestDedupe_StructuralFallback(t *testing.T) {
	noID := func(likes string) model.GenericRecord {
		return model.GenericRecord{"Kontonamn": "Acme", "Gilla-markeringar": likes}
	}

	res := Dedupe(newAccessor(), []model.GenericRecord{noID("1"), noID("1"), noID("2")}, nil, "f")

	assert.Len(t, res.Filtered, 2)
	assert.Equal(t, 1, res.Stats.Duplicates)
	assert.Empty(t, res.Stats.DuplicateIDs)
}

func TestDedupe_Empty(t *testing.T) {
	res := Dedupe(newAccessor(), nil, nil, "f")

	assert.Empty(t, res.Filtered)
	assert.Equal(t, model.DedupeStats{DuplicateIDs: []string{}}, res.Stats)
}
