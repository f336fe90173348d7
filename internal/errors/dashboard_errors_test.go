package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardError_Message(t *testing.T) {
	err := NewDashboardError(ErrorCategoryMarket, "store", "select instrument", "unknown symbol")
	assert.Equal(t, "[MARKET:store] select instrument: unknown symbol", err.Error())

	wrapped := WrapError(fs.ErrNotExist, ErrorCategoryExport, "reporting", "write xlsx")
	assert.Equal(t, "[EXPORT:reporting] write xlsx: operation failed: file does not exist", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, fs.ErrNotExist))
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, ErrorCategoryOrder, "orders", "submit"))
}

func TestWithContext(t *testing.T) {
	err := Validation("marketdata", "order book", "price must be positive, got %v", -1).
		WithContext("price", -1.0)

	assert.Equal(t, ErrorCategoryValidation, err.Category)
	assert.Equal(t, "price must be positive, got -1", err.Message)
	assert.Equal(t, -1.0, err.Context["price"])

	bare := &DashboardError{Category: ErrorCategoryOrder}
	bare.WithContext("id", "ord-1")
	assert.Equal(t, "ord-1", bare.Context["id"])
}

func TestIsCategory(t *testing.T) {
	inner := Validation("types", "parse", "bad timeframe")
	outer := WrapError(inner, ErrorCategoryConfiguration, "config", "validate")
	external := fmt.Errorf("loading: %w", outer)

	assert.True(t, IsCategory(external, ErrorCategoryConfiguration))
	assert.True(t, IsCategory(external, ErrorCategoryValidation))
	assert.False(t, IsCategory(external, ErrorCategoryExport))
	assert.False(t, IsCategory(stderrors.New("plain"), ErrorCategoryValidation))
	assert.False(t, IsCategory(nil, ErrorCategoryValidation))

	var dashErr *DashboardError
	require.True(t, stderrors.As(external, &dashErr))
	assert.Equal(t, "config", dashErr.Component)
}
