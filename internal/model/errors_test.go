package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError_EmptyData(t *testing.T) {
	err := fmt.Errorf("import: %w", NewEmptyDataError("file contains no data rows"))

	assert.True(t, errors.Is(err, ErrEmptyData))

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "file contains no data rows", pe.Reason)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Missing: []MissingColumn{
		{External: "Permalänk", Internal: "permalink"},
		{External: "Räckvidd", Internal: "post_reach"},
	}}

	assert.Equal(t, "missing required columns: Permalänk, Räckvidd", err.Error())
}

func TestNewPersistenceError(t *testing.T) {
	t.Run("wraps cause", func(t *testing.T) {
		err := NewPersistenceError("set", "k", ErrQuotaExceeded)
		assert.True(t, errors.Is(err, ErrQuotaExceeded))
		assert.Contains(t, err.Error(), `persistence set "k" failed`)
	})

	t.Run("does not double wrap", func(t *testing.T) {
		inner := &PersistenceError{Op: "apply", Err: errors.New("disk full")}
		err := NewPersistenceError("save", "", inner)
		assert.Same(t, inner, err)
	})
}
