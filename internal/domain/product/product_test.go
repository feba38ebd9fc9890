package product

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("Brake pad", "bp-001", nil, decimal.NewFromInt(120), 4, 5, "", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "BP-001", p.SKU())
	assert.Equal(t, "un", p.Unit())
	assert.True(t, p.IsLowStock())
}

func TestNewProduct_Invalid(t *testing.T) {
	_, err := NewProduct("Oil", "OIL", nil, decimal.NewFromInt(-1), 0, 0, "l", time.Now())
	assert.Error(t, err)

	_, err = NewProduct("", "OIL", nil, decimal.Zero, 0, 0, "l", time.Now())
	assert.Error(t, err)
}
