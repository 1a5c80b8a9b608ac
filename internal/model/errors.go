package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyData is matched with errors.Is when a CSV has no header or no data rows.
var ErrEmptyData = errors.New("no data found in CSV")

// ErrQuotaExceeded is matched with errors.Is when the store rejects a write for size.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ParseError is fatal to the current import.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return "parse error: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewEmptyDataError reports a CSV without usable rows.
func NewEmptyDataError(reason string) *ParseError {
	return &ParseError{Reason: reason, Err: ErrEmptyData}
}

// MissingColumn is one required column the uploaded headers do not resolve.
type MissingColumn struct {
	External    string `json:"original"`
	Internal    string `json:"internal"`
	DisplayName string `json:"displayName"`
}

// ValidationError lists the required columns an upload lacks. It is not
// fatal: callers may re-run the import with the force flag.
type ValidationError struct {
	Missing []MissingColumn
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		names = append(names, m.External)
	}
	return fmt.Sprintf("missing required columns: %s", strings.Join(names, ", "))
}

// PersistenceError is returned when the backing store rejects a read or write.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("persistence %s %q failed: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError wraps err unless it already is a *PersistenceError.
func NewPersistenceError(op, key string, err error) error {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Key: key, Err: err}
}

// MappingConflictError rejects a mapping before any mutation happens.
type MappingConflictError struct {
	External string
	Internal string
	Reason   string
}

func (e *MappingConflictError) Error() string {
	return fmt.Sprintf("invalid column mapping %q -> %q: %s", e.External, e.Internal, e.Reason)
}
