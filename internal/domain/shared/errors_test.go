package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches the sentinel carrying the same code", func(t *testing.T) {
		err := NewDomainError(ErrInvalidRequest.Code, "quantity must be a positive integer")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("sentinels match themselves", func(t *testing.T) {
		assert.ErrorIs(t, ErrConcurrencyConflict, ErrConcurrencyConflict)
	})

	t.Run("does not match a different code", func(t *testing.T) {
		err := NewDomainError(ErrNotFound.Code, "no such batch")
		assert.NotErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("does not match plain errors", func(t *testing.T) {
		assert.NotErrorIs(t, ErrNotFound, errors.New("NOT_FOUND"))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("creating sale: %w", NewDomainError(ErrConcurrencyConflict.Code, "batch drained"))
		assert.ErrorIs(t, err, ErrConcurrencyConflict)
	})
}

func TestInsufficientStockError(t *testing.T) {
	err := NewInsufficientStockError(31, 30)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, "insufficient stock: required 31, available 30", err.Error())

	var typed *InsufficientStockError
	assert.ErrorAs(t, err, &typed)
	assert.Equal(t, int64(31), typed.Required)
	assert.Equal(t, int64(30), typed.Available)
}
