package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock quantity")
	ErrInvalidProduct      = errors.New("product price and quantity cannot be negative")
	ErrProductNameRequired = errors.New("product name is required")
	ErrInvalidRating       = errors.New("rating must be between 0 and 5")
	ErrOptimisticLock      = errors.New("record has been modified by another transaction")
)

const maxRating = 5.0

// InsufficientStockError reports how many kilograms the shopper could have taken.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %skg of %s is available", FormatAmount(e.Available), e.ProductName)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    decimal.Decimal `json:"quantity" db:"quantity"`
	Category    string          `json:"category" db:"category"`
	Image       string          `json:"image" db:"image"`
	Alt         string          `json:"alt" db:"alt"`
	Rating      *float64        `json:"rating,omitempty" db:"rating"`
	ReviewCount int             `json:"review_count" db:"review_count"`
	FarmerID    uuid.NullUUID   `json:"farmer_id" db:"farmer_id"`
	Version     int             `json:"version" db:"version"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrProductNameRequired
	}
	if p.Price.IsNegative() || p.Quantity.IsNegative() || p.ReviewCount < 0 {
		return ErrInvalidProduct
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > maxRating) {
		return ErrInvalidRating
	}
	return nil
}

func (p *Product) InStock() bool {
	return p.Quantity.IsPositive()
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
	Find(ctx context.Context, id int64) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)

	// DecrementStock checks availability and subtracts kilograms as one step.
	// On shortage it returns *InsufficientStockError and leaves the product untouched.
	DecrementStock(ctx context.Context, id int64, kilograms decimal.Decimal) (*Product, error)
	RestoreStock(ctx context.Context, id int64, kilograms decimal.Decimal) (*Product, error)
}
