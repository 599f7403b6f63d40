package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
	ErrInvalidUnit     = errors.New("unit must be kg or g")
)

type Unit string

const (
	Kilogram Unit = "kg"
	Gram     Unit = "g"
)

// QuantityScale is the number of fractional digits stored for quantities and kilograms.
const QuantityScale = 6

const (
	maxQuantityDigits = 9
	// Exponents outside this window are rejected before any rescaling arithmetic.
	minQuantityExponent = -(QuantityScale + 12)
)

// maxQuantity bounds the integer part to what DECIMAL(15, 6) columns hold.
var maxQuantity = decimal.New(1, maxQuantityDigits)

// gramsShift moves the decimal point from grams to kilograms.
const gramsShift = -3

func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case Kilogram:
		return Kilogram, nil
	case Gram:
		return Gram, nil
	}
	return "", ErrInvalidUnit
}

func (u Unit) Valid() bool {
	return u == Kilogram || u == Gram
}

// ToKilograms normalizes a quantity expressed in u to kilograms. The result must stay
// positive and fit QuantityScale, so sub-milligram gram amounts are rejected.
func ToKilograms(quantity decimal.Decimal, u Unit) (decimal.Decimal, error) {
	var kilograms decimal.Decimal
	switch u {
	case Kilogram:
		kilograms = quantity
	case Gram:
		kilograms = quantity.Shift(gramsShift)
	default:
		return decimal.Zero, ErrInvalidUnit
	}
	if !validQuantity(kilograms) {
		return decimal.Zero, ErrInvalidQuantity
	}
	return kilograms, nil
}

func validQuantity(q decimal.Decimal) bool {
	if !q.IsPositive() {
		return false
	}
	if exp := q.Exponent(); exp >= maxQuantityDigits || exp < minQuantityExponent {
		return false
	}
	return q.LessThan(maxQuantity) && q.Equal(q.Truncate(QuantityScale))
}

// ParseQuantity is the only way text input becomes a quantity. Only plain positive
// decimals below one billion with at most QuantityScale fractional digits pass. Exponent
// notation is rejected before parsing, there is no fallback to zero.
func ParseQuantity(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, "eE") {
		return decimal.Zero, ErrInvalidQuantity
	}
	quantity, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, ErrInvalidQuantity
	}
	if !validQuantity(quantity) {
		return decimal.Zero, ErrInvalidQuantity
	}
	return quantity, nil
}
