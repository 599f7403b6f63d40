package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

// ProfileInput is a partial update. Nil fields are left unchanged.
type ProfileInput struct {
	Username *string
	Email    *string
	FullName *string
	Phone    *string
	Location *string
	Role     *model.Role
}

type ProfileService interface {
	CurrentProfile(ctx context.Context, requesterID uuid.UUID) (*model.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, requesterID, id uuid.UUID, input ProfileInput) (*model.Profile, error)
	DeleteProfile(ctx context.Context, requesterID, id uuid.UUID) error
}

func NewProfileService(repo model.ProfileRepository, dispatcher EventDispatcher) ProfileService {
	return &profileService{repo: repo, dispatcher: dispatcher}
}

type profileService struct {
	repo       model.ProfileRepository
	dispatcher EventDispatcher
}

// CurrentProfile creates a customer profile the first time an authenticated user shows up.
func (s *profileService) CurrentProfile(ctx context.Context, requesterID uuid.UUID) (*model.Profile, error) {
	if requesterID == uuid.Nil {
		return nil, model.ErrUnauthorized
	}

	profile, err := s.repo.Find(ctx, requesterID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, model.ErrProfileNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	profile = &model.Profile{
		ID:        requesterID,
		Role:      model.RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return s.repo.Find(ctx, id)
}

func (s *profileService) UpdateProfile(ctx context.Context, requesterID, id uuid.UUID, input ProfileInput) (*model.Profile, error) {
	admin, err := isAdmin(ctx, s.repo, requesterID)
	if err != nil {
		return nil, err
	}
	if requesterID != id && !admin {
		return nil, model.ErrUnauthorized
	}
	if input.Role != nil && !admin {
		return nil, model.ErrUnauthorized
	}

	profile, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	setIfPresent(&profile.Username, input.Username)
	setIfPresent(&profile.Email, input.Email)
	setIfPresent(&profile.FullName, input.FullName)
	setIfPresent(&profile.Phone, input.Phone)
	setIfPresent(&profile.Location, input.Location)
	if input.Role != nil {
		profile.Role = *input.Role
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	dispatchEvents(s.dispatcher, model.ProfileUpdated{ProfileID: id})
	return profile, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, requesterID, id uuid.UUID) error {
	admin, err := isAdmin(ctx, s.repo, requesterID)
	if err != nil {
		return err
	}
	if !admin {
		return model.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	dispatchEvents(s.dispatcher, model.ProfileDeleted{ProfileID: id})
	return nil
}

func setIfPresent(field *string, value *string) {
	if value != nil {
		*field = *value
	}
}
