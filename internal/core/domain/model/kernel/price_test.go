package kernel_test

import (
	"testing"

	"notapos/internal/core/domain/model/kernel"
	"notapos/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrice(t *testing.T) {
	t.Run("should create price from non-negative amount", func(t *testing.T) {
		price, err := kernel.NewPrice(decimal.NewFromFloat(17.00))

		require.NoError(t, err)
		assert.Equal(t, "17.00", price.String())
		assert.NoError(t, price.Validate())
	})

	t.Run("zero price is valid", func(t *testing.T) {
		price, err := kernel.NewPrice(decimal.Zero)

		require.NoError(t, err)
		assert.Equal(t, "0.00", price.String())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewPrice(decimal.NewFromFloat(-0.01))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPriceFromString(t *testing.T) {
	t.Run("should parse decimal string", func(t *testing.T) {
		price, err := kernel.PriceFromString("8.50")

		require.NoError(t, err)
		assert.Equal(t, "8.50", price.String())
	})

	t.Run("should reject malformed string", func(t *testing.T) {
		_, err := kernel.PriceFromString("eight fifty")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative string", func(t *testing.T) {
		_, err := kernel.PriceFromString("-3.00")

		require.Error(t, err)
	})
}

func TestPrice_IsEqual(t *testing.T) {
	t.Run("compares by numeric value", func(t *testing.T) {
		a, err := kernel.PriceFromString("17.0")
		require.NoError(t, err)
		b, err := kernel.PriceFromString("17.00")
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
	})

	t.Run("different amounts are not equal", func(t *testing.T) {
		a, err := kernel.PriceFromString("17.00")
		require.NoError(t, err)
		b, err := kernel.PriceFromString("17.01")
		require.NoError(t, err)

		assert.False(t, a.IsEqual(b))
	})
}
