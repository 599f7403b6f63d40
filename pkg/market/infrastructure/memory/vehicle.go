package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type VehicleRepository struct {
	mu     sync.RWMutex
	nextID int64
	store  map[int64]model.Vehicle
}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{nextID: 1, store: make(map[int64]model.Vehicle)}
}

func (r *VehicleRepository) Create(_ context.Context, vehicle *model.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if vehicle.ID == 0 {
		vehicle.ID = r.nextID
	}
	if vehicle.ID >= r.nextID {
		r.nextID = vehicle.ID + 1
	}
	r.store[vehicle.ID] = *vehicle
	return nil
}

func (r *VehicleRepository) Update(_ context.Context, vehicle *model.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[vehicle.ID]; !ok {
		return model.ErrVehicleNotFound
	}
	r.store[vehicle.ID] = *vehicle
	return nil
}

func (r *VehicleRepository) Find(_ context.Context, id int64) (*model.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vehicle, ok := r.store[id]
	if !ok {
		return nil, model.ErrVehicleNotFound
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindAll(_ context.Context) ([]model.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vehicles := make([]model.Vehicle, 0, len(r.store))
	for _, v := range r.store {
		vehicles = append(vehicles, v)
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID < vehicles[j].ID })
	return vehicles, nil
}
