package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
)

var paymentConfig = service.PaymentConfig{
	PayeeID:      "greenlink@paytm",
	PayeeName:    "GreenLink",
	Currency:     "INR",
	CategoryCode: "1234",
}

func setupPayments(t *testing.T) (service.PaymentService, *mockOrderRepository, *mockProfileRepository, *mockEncoder) {
	orders := newMockOrderRepository()
	profiles := newMockProfileRepository()
	encoder := &mockEncoder{}
	return service.NewPaymentService(paymentConfig, orders, profiles, encoder), orders, profiles, encoder
}

func pendingOrder(t *testing.T, orders *mockOrderRepository, customer uuid.UUID, total string) *model.Order {
	order := &model.Order{
		ID:             uuid.New(),
		CustomerID:     customer,
		GrandTotal:     dec(total),
		Status:         model.OrderStatusPending,
		PaymentStatus:  model.PaymentStatusPending,
		TransactionRef: "TXNABC123XYZ",
		Version:        1,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, orders.Create(context.Background(), order))
	return order
}

func TestPaymentRequest(t *testing.T) {
	ctx := context.Background()
	svc, orders, profiles, _ := setupPayments(t)
	customer := uuid.New()
	require.NoError(t, profiles.Create(ctx, &model.Profile{ID: customer, FullName: "Asha Devi", Role: model.RoleCustomer}))
	order := pendingOrder(t, orders, customer, "65.5")

	t.Run("Carries every field scanners need", func(t *testing.T) {
		request, err := svc.PaymentRequest(ctx, customer, order.ID)

		require.NoError(t, err)
		assert.Equal(t, "greenlink@paytm", request.PayeeID)
		assert.Equal(t, "GreenLink", request.PayeeName)
		assert.Equal(t, "65.50", model.FormatAmount(request.Amount))
		assert.Equal(t, "Payment to GreenLink by Asha Devi", request.Note)
		assert.Equal(t, "TXNABC123XYZ", request.TransactionID)
		assert.Equal(t, "INR", request.Currency)
		assert.Equal(t, "1234", request.CategoryCode)
		assert.Equal(t,
			"upi://pay?pa=greenlink@paytm&pn=GreenLink&am=65.50&tn=Payment%20to%20GreenLink%20by%20Asha%20Devi&tr=TXNABC123XYZ&cu=INR&mc=1234",
			request.URI())
	})

	t.Run("Anonymous shoppers pay as Customer", func(t *testing.T) {
		anonymous := pendingOrder(t, orders, uuid.Nil, "20")

		request, err := svc.PaymentRequest(ctx, uuid.Nil, anonymous.ID)

		require.NoError(t, err)
		assert.Equal(t, "Payment to GreenLink by Customer", request.Note)
	})

	t.Run("Other customers cannot see the request", func(t *testing.T) {
		_, err := svc.PaymentRequest(ctx, uuid.New(), order.ID)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})

	t.Run("Settled orders have no payment request", func(t *testing.T) {
		settled := pendingOrder(t, orders, customer, "10")
		settled.Status = model.OrderStatusPaid
		settled.Version++
		require.NoError(t, orders.Update(ctx, settled))

		_, err := svc.PaymentRequest(ctx, customer, settled.ID)
		assert.ErrorIs(t, err, model.ErrOrderCannotBeModified)
	})
}

func TestPaymentCode(t *testing.T) {
	ctx := context.Background()

	t.Run("Encodes the payment URI", func(t *testing.T) {
		svc, orders, _, encoder := setupPayments(t)
		order := pendingOrder(t, orders, uuid.Nil, "20")

		image, err := svc.PaymentCode(ctx, uuid.Nil, order.ID)

		require.NoError(t, err)
		assert.Equal(t, "png:"+encoder.content, string(image))
		assert.Contains(t, encoder.content, "am=20.00")
	})

	t.Run("Encoder failure is reported, not retried", func(t *testing.T) {
		svc, orders, _, encoder := setupPayments(t)
		order := pendingOrder(t, orders, uuid.Nil, "20")
		encoder.err = errors.New("data too long")

		_, err := svc.PaymentCode(ctx, uuid.Nil, order.ID)

		assert.ErrorIs(t, err, model.ErrEncodingFailure)
		assert.Contains(t, err.Error(), "data too long")
	})
}
