package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidRole     = errors.New("unknown profile role")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleFarmer   Role = "farmer"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch role := Role(s); role {
	case RoleCustomer, RoleFarmer, RoleAdmin:
		return role, nil
	}
	return "", ErrInvalidRole
}

type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	Location  string    `json:"location" db:"location"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, id uuid.UUID) (*Profile, error)
	Count(ctx context.Context) (int, error)
}
