// Package export renders view rows as CSV, JSON or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/model"
)

// Supported output formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// SheetName is the worksheet XLSX exports write to.
const SheetName = "Statistik"

// Result describes one written export file.
type Result struct {
	Format      string    `json:"format"`
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	ExportedAt  time.Time `json:"exported_at"`
}

// ParseFormat accepts a format name in any case. An empty name means csv.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType is the MIME type served for a format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// AccountColumns prefixes the selected metric fields with the account
// identity columns of the account table.
func AccountColumns(fields []string) []string {
	cols := []string{model.FieldAccountName, model.FieldAccountUsername}
	for _, f := range fields {
		if f != model.FieldAccountName && f != model.FieldAccountUsername {
			cols = append(cols, f)
		}
	}
	return cols
}

// headerRow maps fields to their display names.
func headerRow(fields []string) []string {
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = mapping.DisplayName(f)
	}
	return header
}

// cellText renders a value for text formats. Missing values are empty.
func cellText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// WriteCSV writes a header row of display names and one line per row, in
// the given field order.
func WriteCSV(w io.Writer, rows []model.GenericRecord, fields []string) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headerRow(fields)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	line := make([]string, len(fields))
	for _, row := range rows {
		for i, f := range fields {
			line[i] = cellText(row[f])
		}
		if err := writer.Write(line); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the rows reduced to the given fields, with the column
// order and display names alongside.
func WriteJSON(w io.Writer, rows []model.GenericRecord, fields []string) error {
	data := make([]model.GenericRecord, 0, len(rows))
	for _, row := range rows {
		out := make(model.GenericRecord, len(fields))
		for _, f := range fields {
			if v, ok := row[f]; ok {
				out[f] = v
			}
		}
		data = append(data, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	payload := map[string]interface{}{
		"export_info": map[string]interface{}{
			"exported_at":  time.Now().UTC(),
			"record_count": len(data),
			"fields":       fields,
			"headers":      headerRow(fields),
		},
		"data": data,
	}
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// cellValue keeps numbers numeric in spreadsheets.
func cellValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case string, int, int64, float64, float32, bool:
		return val
	default:
		return cellText(val)
	}
}

// WriteXLSX writes one worksheet named Statistik.
func WriteXLSX(w io.Writer, rows []model.GenericRecord, fields []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(fields))
	for i, h := range headerRow(fields) {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range rows {
		cells := make([]interface{}, len(fields))
		for i, field := range fields {
			cells[i] = cellValue(row[field])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Write renders rows in format.
func Write(w io.Writer, format string, rows []model.GenericRecord, fields []string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, rows, fields)
	case FormatXLSX:
		return WriteXLSX(w, rows, fields)
	default:
		return WriteCSV(w, rows, fields)
	}
}

// WriteFile creates path (and its directory) and renders rows into it.
func WriteFile(path, format string, rows []model.GenericRecord, fields []string) (Result, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := Write(file, format, rows, fields); err != nil {
		log.Printf("❌ Export to file failed: %v", err)
		return Result{}, err
	}

	log.Printf("✅ Export to file successful: %d records exported to %s", len(rows), path)
	return Result{Format: format, Path: path, RecordCount: len(rows), ExportedAt: time.Now()}, nil
}
