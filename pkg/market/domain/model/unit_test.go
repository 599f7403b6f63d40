package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Unit
	}{
		{"kg", Kilogram},
		{" KG ", Kilogram},
		{"g", Gram},
	} {
		unit, err := ParseUnit(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, unit)
	}

	_, err := ParseUnit("lb")
	assert.ErrorIs(t, err, ErrInvalidUnit)
}

func TestToKilograms(t *testing.T) {
	t.Run("Kilograms are unchanged", func(t *testing.T) {
		kg, err := ToKilograms(decimal.RequireFromString("2.5"), Kilogram)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("2.5").Equal(kg))
	})

	t.Run("Grams divide by a thousand", func(t *testing.T) {
		kg, err := ToKilograms(decimal.NewFromInt(500), Gram)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("0.5").Equal(kg))
	})

	t.Run("Same weight in either unit", func(t *testing.T) {
		for _, q := range []string{"1", "0.75", "12.345", "250"} {
			x := decimal.RequireFromString(q)
			fromKg, _ := ToKilograms(x, Kilogram)
			fromGrams, _ := ToKilograms(x.Mul(decimal.NewFromInt(1000)), Gram)
			assert.True(t, fromKg.Equal(fromGrams), q)
		}
	})

	t.Run("Conversion never yields zero kilograms", func(t *testing.T) {
		for _, q := range []string{"0.0001", "0.000001"} {
			_, err := ToKilograms(decimal.RequireFromString(q), Gram)
			assert.ErrorIs(t, err, ErrInvalidQuantity, q)
		}

		kg, err := ToKilograms(decimal.RequireFromString("0.001"), Gram)
		require.NoError(t, err)
		assert.Equal(t, "0.000001", kg.String())
	})

	t.Run("Tiny values built without parsing are still rejected", func(t *testing.T) {
		_, err := ToKilograms(decimal.New(1, -3000000), Gram)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = ToKilograms(decimal.New(1, -7), Kilogram)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = ToKilograms(decimal.New(1, 3000000), Kilogram)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("Unknown unit", func(t *testing.T) {
		_, err := ToKilograms(decimal.NewFromInt(1), Unit("lb"))
		assert.ErrorIs(t, err, ErrInvalidUnit)
	})
}

func TestParseQuantity(t *testing.T) {
	quantity, err := ParseQuantity(" 0.5 ")
	require.NoError(t, err)
	assert.Equal(t, "0.5", quantity.String())

	quantity, err = ParseQuantity("12.000001")
	require.NoError(t, err)
	assert.Equal(t, "12.000001", quantity.String())

	for _, text := range []string{
		"", "   ", "abc", "0", "-1", "NaN", "1kg",
		"1e3", "1E-3", "1e-3000000", "0.0000001", "1000000000", "99999999999999999999",
	} {
		_, err := ParseQuantity(text)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "%q", text)
	}
}

func TestPricing(t *testing.T) {
	t.Run("Line total keeps precision", func(t *testing.T) {
		total := LineTotal(decimal.RequireFromString("33.33"), decimal.RequireFromString("0.333"))
		assert.Equal(t, "11.09889", total.String())
		assert.Equal(t, "11.10", FormatAmount(RoundCurrency(total)))
	})

	t.Run("Amounts always show two places", func(t *testing.T) {
		assert.Equal(t, "20.00", FormatAmount(decimal.NewFromInt(20)))
		assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	})
}
