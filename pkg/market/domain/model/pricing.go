package model

import "github.com/shopspring/decimal"

const currencyPlaces = 2

// LineTotal keeps full precision. Round only what is shown to the shopper.
func LineTotal(pricePerKg, kilograms decimal.Decimal) decimal.Decimal {
	return kilograms.Mul(pricePerKg)
}

func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(currencyPlaces)
}

func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(currencyPlaces)
}
