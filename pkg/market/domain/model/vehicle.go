package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrVehicleNotAvailable = errors.New("vehicle is not available for rent")
	ErrInvalidDailyRate    = errors.New("daily rate must be a positive number")
)

type Vehicle struct {
	ID          int64           `json:"id" db:"id"`
	OwnerID     uuid.NullUUID   `json:"owner_id" db:"owner_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	DailyRate   decimal.Decimal `json:"daily_rate" db:"daily_rate"`
	Location    string          `json:"location" db:"location"`
	Type        string          `json:"type" db:"type"`
	Image       string          `json:"image" db:"image"`
	Available   bool            `json:"available" db:"available"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *Vehicle) error
	Update(ctx context.Context, vehicle *Vehicle) error
	Find(ctx context.Context, id int64) (*Vehicle, error)
	FindAll(ctx context.Context) ([]Vehicle, error)
}
