package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type VehicleInput struct {
	Name        string
	Description string
	DailyRate   decimal.Decimal
	Location    string
	Type        string
	Image       string
}

type VehicleService interface {
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	ListVehicle(ctx context.Context, ownerID uuid.UUID, input VehicleInput) (*model.Vehicle, error)
	BookVehicle(ctx context.Context, renterID uuid.UUID, id int64) (*model.Vehicle, error)
}

func NewVehicleService(repo model.VehicleRepository, dispatcher EventDispatcher) VehicleService {
	return &vehicleService{repo: repo, dispatcher: dispatcher}
}

type vehicleService struct {
	repo       model.VehicleRepository
	dispatcher EventDispatcher
}

func (s *vehicleService) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return s.repo.FindAll(ctx)
}

func (s *vehicleService) ListVehicle(ctx context.Context, ownerID uuid.UUID, input VehicleInput) (*model.Vehicle, error) {
	if !input.DailyRate.IsPositive() {
		return nil, model.ErrInvalidDailyRate
	}

	vehicle := &model.Vehicle{
		OwnerID:     uuid.NullUUID{UUID: ownerID, Valid: ownerID != uuid.Nil},
		Name:        input.Name,
		Description: input.Description,
		DailyRate:   input.DailyRate,
		Location:    input.Location,
		Type:        input.Type,
		Image:       input.Image,
		Available:   true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	dispatchEvents(s.dispatcher, model.VehicleListed{VehicleID: vehicle.ID, Name: vehicle.Name})
	return vehicle, nil
}

func (s *vehicleService) BookVehicle(ctx context.Context, renterID uuid.UUID, id int64) (*model.Vehicle, error) {
	vehicle, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !vehicle.Available {
		return nil, model.ErrVehicleNotAvailable
	}

	vehicle.Available = false
	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	dispatchEvents(s.dispatcher, model.VehicleBooked{VehicleID: id, RenterID: renterID})
	return vehicle, nil
}
