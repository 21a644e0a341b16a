package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"gudang/internal/apperr"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("reduce quantity: %w", apperr.InsufficientStock("not enough stock"))

	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(wrapped))
	assert.True(t, apperr.Is(wrapped, apperr.KindInsufficientStock))
	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(errors.New("boom")))
}

func TestWrap_KeepsKindAndCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: products.barcode")
	err := apperr.Conflict("barcode", "product with this barcode already exists").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperr.KindConflict, err.Kind)
	assert.Equal(t, "product with this barcode already exists", err.Fields["barcode"])
	assert.Contains(t, err.Error(), "conflict")
}

func TestNotFound_Message(t *testing.T) {
	err := apperr.NotFound("product", 42)

	assert.Equal(t, "product 42 not found", err.Message)
	assert.Equal(t, "not_found: product 42 not found", err.Error())
}
