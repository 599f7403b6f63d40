package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderCannotBeModified = errors.New("order cannot be modified in its current state")
	ErrInvalidOrderStatus    = errors.New("unknown order status")
	ErrOrderHasNoItems       = errors.New("order must contain at least one item")
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled:
		return status, nil
	}
	return "", ErrInvalidOrderStatus
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch status := PaymentStatus(s); status {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return status, nil
	}
	return "", ErrInvalidOrderStatus
}

// CanTransitionTo allows only pending -> paid and pending -> cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	return s == OrderStatusPending && (next == OrderStatusPaid || next == OrderStatusCancelled)
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	return s == PaymentStatusPending && (next == PaymentStatusCompleted || next == PaymentStatusFailed)
}

type Order struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	CustomerID     uuid.UUID       `json:"customer_id" db:"customer_id"`
	Items          []OrderItem     `json:"items" db:"-"`
	GrandTotal     decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status         OrderStatus     `json:"status" db:"status"`
	PaymentStatus  PaymentStatus   `json:"payment_status" db:"payment_status"`
	TransactionRef string          `json:"transaction_ref" db:"transaction_ref"`
	Version        int             `json:"version" db:"version"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

type OrderItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID   int64           `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    decimal.Decimal `json:"quantity" db:"quantity"`
	Unit        Unit            `json:"unit" db:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	Kilograms   decimal.Decimal `json:"kilograms" db:"kilograms"`
	TotalPrice  decimal.Decimal `json:"total_price" db:"total_price"`
}

func NewOrderItem(orderID uuid.UUID, line BillLine) OrderItem {
	return OrderItem{
		ID:          line.ID,
		OrderID:     orderID,
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Quantity:    line.Quantity,
		Unit:        line.Unit,
		UnitPrice:   line.UnitPrice,
		Kilograms:   line.Kilograms,
		TotalPrice:  line.LineTotal,
	}
}

// ItemsTotal recomputes the grand total from the items, rounded for presentation.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice)
	}
	return RoundCurrency(total)
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	Find(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByCustomer returns the customer's orders, newest first.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	FindAll(ctx context.Context) ([]Order, error)
}
