package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCartIsEmpty       = errors.New("cannot check out an empty cart")
	ErrCartLineNotFound  = errors.New("cart line not found")
	ErrPaymentInProgress = errors.New("cart has an order awaiting payment")
	ErrInvalidSession    = errors.New("session id is required")
)

// BillLine is one entry of the shopper's bill. UnitPrice is the product price per
// kilogram at the moment the line was added.
type BillLine struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        Unit            `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Kilograms   decimal.Decimal `json:"kilograms"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Cart struct {
	SessionID      string        `json:"session_id"`
	Lines          []BillLine    `json:"lines"`
	PendingOrderID uuid.NullUUID `json:"pending_order_id"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []BillLine{}}
}

// Total is the unrounded sum of line totals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.LineTotal)
	}
	return total
}

func (c *Cart) PresentedTotal() decimal.Decimal {
	return RoundCurrency(c.Total())
}

// Count is the badge number: the sum of requested quantities as entered.
func (c *Cart) Count() decimal.Decimal {
	count := decimal.Zero
	for _, line := range c.Lines {
		count = count.Add(line.Quantity)
	}
	return count
}

func (c *Cart) FindLine(lineID uuid.UUID) (BillLine, bool) {
	for _, line := range c.Lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return BillLine{}, false
}

func (c *Cart) RemoveLine(lineID uuid.UUID) (BillLine, error) {
	for i, line := range c.Lines {
		if line.ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return line, nil
		}
	}
	return BillLine{}, ErrCartLineNotFound
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

type CartRepository interface {
	// Find returns an empty cart when the session has none yet.
	Find(ctx context.Context, sessionID string) (*Cart, error)
	Store(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}
