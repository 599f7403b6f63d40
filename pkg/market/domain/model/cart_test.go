package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(quantity string, unit Unit, price string) BillLine {
	q := decimal.RequireFromString(quantity)
	kg, _ := ToKilograms(q, unit)
	p := decimal.RequireFromString(price)
	return BillLine{ID: uuid.New(), Quantity: q, Unit: unit, UnitPrice: p, Kilograms: kg, LineTotal: LineTotal(p, kg)}
}

func TestCart(t *testing.T) {
	cart := NewCart("s1")
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "0.00", FormatAmount(cart.PresentedTotal()))

	a := line("500", Gram, "40")
	b := line("0.5", Kilogram, "91")
	cart.Lines = append(cart.Lines, a, b)

	t.Run("Totals", func(t *testing.T) {
		assert.Equal(t, "65.50", FormatAmount(cart.PresentedTotal()))
		assert.True(t, decimal.RequireFromString("500.5").Equal(cart.Count()))
	})

	t.Run("Find and remove", func(t *testing.T) {
		found, ok := cart.FindLine(b.ID)
		require.True(t, ok)
		assert.Equal(t, b.ID, found.ID)

		removed, err := cart.RemoveLine(a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, removed.ID)
		assert.Len(t, cart.Lines, 1)

		_, err = cart.RemoveLine(a.ID)
		assert.ErrorIs(t, err, ErrCartLineNotFound)
	})
}

func TestOrderTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusPaid))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusPaid.CanTransitionTo(OrderStatusPaid))
	assert.False(t, OrderStatusPaid.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPaid))

	assert.True(t, PaymentStatusPending.CanTransitionTo(PaymentStatusFailed))
	assert.False(t, PaymentStatusCompleted.CanTransitionTo(PaymentStatusFailed))

	_, err := ParseOrderStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}
