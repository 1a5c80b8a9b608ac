package export

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"post-stats-pipeline/internal/model"
)

func sampleRows() []model.GenericRecord {
	return []model.GenericRecord{
		{model.FieldAccountName: "Acme", model.FieldLikes: 8.0, model.FieldPostsPerDay: 1.3},
		{model.FieldAccountName: "Beta, AB", model.FieldLikes: 1250000.0},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" json ", FormatJSON, false},
		{"xlsx", FormatXLSX, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	fields := []string{model.FieldAccountName, model.FieldLikes, model.FieldPostsPerDay}

	require.NoError(t, WriteCSV(&buf, sampleRows(), fields))
	assert.Equal(t,
		"Kontonamn,Gilla-markeringar,Antal publiceringar per dag\n"+
			"Acme,8,1.3\n"+
			"\"Beta, AB\",1250000,\n",
		buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRows(), []string{model.FieldLikes}))

	var got struct {
		ExportInfo struct {
			RecordCount int      `json:"record_count"`
			Headers     []string `json:"headers"`
		} `json:"export_info"`
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got.ExportInfo.RecordCount)
	assert.Equal(t, []string{"Gilla-markeringar"}, got.ExportInfo.Headers)
	assert.Equal(t, map[string]interface{}{model.FieldLikes: 8.0}, got.Data[0])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	fields := []string{model.FieldAccountName, model.FieldLikes}
	require.NoError(t, WriteXLSX(&buf, sampleRows(), fields))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, SheetName, f.GetSheetName(0))
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Kontonamn", "Gilla-markeringar"}, rows[0])
	assert.Equal(t, []string{"Acme", "8"}, rows[1])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "konton.csv")
	res, err := WriteFile(path, FormatCSV, sampleRows(), []string{model.FieldAccountName})
	require.NoError(t, err)
	assert.Equal(t, 2, res.RecordCount)
	assert.FileExists(t, path)
}

func TestAccountColumns(t *testing.T) {
	got := AccountColumns([]string{model.FieldLikes, model.FieldAccountName})
	assert.Equal(t, []string{model.FieldAccountName, model.FieldAccountUsername, model.FieldLikes}, got)
}
