package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	store map[uuid.UUID]model.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{store: make(map[uuid.UUID]model.Profile)}
}

func (r *ProfileRepository) Create(_ context.Context, profile *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[profile.ID] = *profile
	return nil
}

func (r *ProfileRepository) Update(_ context.Context, profile *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[profile.ID]; !ok {
		return model.ErrProfileNotFound
	}
	r.store[profile.ID] = *profile
	return nil
}

func (r *ProfileRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return model.ErrProfileNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *ProfileRepository) Find(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.store[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return &profile, nil
}

func (r *ProfileRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.store), nil
}
