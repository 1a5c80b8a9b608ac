package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"post-stats-pipeline/internal/model"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Input encodings DecodeInput reports
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF8BOM     = "utf-8-bom"
	EncodingUTF16LE     = "utf-16le"
	EncodingUTF16BE     = "utf-16be"
	EncodingWindows1252 = "windows-1252"
)

// ParsedCSV is the header row and the raw records of one upload. Raw record
// values are the untouched cell text keyed by header.
type ParsedCSV struct {
	Headers  []string
	Rows     []model.GenericRecord
	Warnings []model.ParseWarning
	Encoding string
}

// DecodeInput converts upload bytes to UTF-8. A BOM selects UTF-8 or UTF-16;
// anything else that is not valid UTF-8 is read as Windows-1252.
func DecodeInput(data []byte) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], EncodingUTF8BOM, nil
	case bytes.HasPrefix(data, bomUTF16LE):
		out, _, err := transform.Bytes(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder(), data)
		return out, EncodingUTF16LE, err
	case bytes.HasPrefix(data, bomUTF16BE):
		out, _, err := transform.Bytes(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder(), data)
		return out, EncodingUTF16BE, err
	case utf8.Valid(data):
		return data, EncodingUTF8, nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	return out, EncodingWindows1252, err
}

func cleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	return strings.TrimSpace(h)
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseCSV reads a comma-delimited export. Short rows are padded and long
// rows truncated to the header width; each repair becomes a warning.
func ParseCSV(ctx context.Context, data []byte) (*ParsedCSV, error) {
	decoded, encoding, err := DecodeInput(data)
	if err != nil {
		return nil, &model.ParseError{Reason: "could not decode input", Err: err}
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, model.NewEmptyDataError("empty file: no header row found")
	}
	if err != nil {
		return nil, &model.ParseError{Reason: "failed to read header row", Err: err}
	}
	for i, h := range headers {
		headers[i] = cleanHeader(h)
	}
	if blankRow(headers) {
		return nil, model.NewEmptyDataError("empty file: no header row found")
	}

	parsed := &ParsedCSV{Headers: headers, Encoding: encoding}
	width := len(headers)
	rowNum := 1

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			parsed.Warnings = append(parsed.Warnings, model.ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}
		if blankRow(row) {
			continue
		}

		switch {
		case len(row) < width:
			parsed.Warnings = append(parsed.Warnings, model.ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), width),
			})
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		case len(row) > width:
			parsed.Warnings = append(parsed.Warnings, model.ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), width),
			})
			row = row[:width]
		}

		rec := make(model.GenericRecord, width)
		for i, h := range headers {
			rec[h] = row[i]
		}
		parsed.Rows = append(parsed.Rows, rec)

		if n := len(parsed.Rows); n <= 5 || n%500 == 0 {
			log.Printf("📄 CSV: read %d rows", n)
		}
	}

	if len(parsed.Rows) == 0 {
		return nil, model.NewEmptyDataError("file contains no data rows")
	}

	log.Printf("📄 CSV ingestion done: %d rows, %d headers, %d warnings (%s)",
		len(parsed.Rows), width, len(parsed.Warnings), encoding)
	return parsed, nil
}
