package service

import (
	"context"
	"errors"
	"time"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type WishlistService interface {
	// Items resolves the saved products. Products deleted from the catalog are skipped.
	Items(ctx context.Context, sessionID string) ([]model.Product, error)
	Add(ctx context.Context, sessionID string, productID int64) error
	Remove(ctx context.Context, sessionID string, productID int64) error
	Contains(ctx context.Context, sessionID string, productID int64) (bool, error)
	Clear(ctx context.Context, sessionID string) error
}

func NewWishlistService(
	products model.ProductRepository,
	wishlists model.WishlistRepository,
	dispatcher EventDispatcher,
) WishlistService {
	return &wishlistService{
		products:   products,
		wishlists:  wishlists,
		dispatcher: dispatcher,
		sessions:   newSessionLocks(),
	}
}

type wishlistService struct {
	products   model.ProductRepository
	wishlists  model.WishlistRepository
	dispatcher EventDispatcher
	sessions   *sessionLocks
}

func (s *wishlistService) Items(ctx context.Context, sessionID string) ([]model.Product, error) {
	if sessionID == "" {
		return nil, model.ErrInvalidSession
	}
	wishlist, err := s.wishlists.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(wishlist.ProductIDs))
	for _, id := range wishlist.ProductIDs {
		product, err := s.products.Find(ctx, id)
		if errors.Is(err, model.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}

// Add is a no-op when the product is already saved.
func (s *wishlistService) Add(ctx context.Context, sessionID string, productID int64) error {
	if sessionID == "" {
		return model.ErrInvalidSession
	}
	if _, err := s.products.Find(ctx, productID); err != nil {
		return err
	}

	unlock := s.sessions.lock(sessionID)
	defer unlock()

	wishlist, err := s.wishlists.Find(ctx, sessionID)
	if err != nil {
		return err
	}
	if !wishlist.Add(productID) {
		return nil
	}
	if err := s.store(ctx, wishlist); err != nil {
		return err
	}

	dispatchEvents(s.dispatcher, model.ProductWishlisted{SessionID: sessionID, ProductID: productID})
	return nil
}

// Remove is a no-op when the product is not saved.
func (s *wishlistService) Remove(ctx context.Context, sessionID string, productID int64) error {
	if sessionID == "" {
		return model.ErrInvalidSession
	}

	unlock := s.sessions.lock(sessionID)
	defer unlock()

	wishlist, err := s.wishlists.Find(ctx, sessionID)
	if err != nil {
		return err
	}
	if !wishlist.Remove(productID) {
		return nil
	}
	if err := s.store(ctx, wishlist); err != nil {
		return err
	}

	dispatchEvents(s.dispatcher, model.ProductUnwishlisted{SessionID: sessionID, ProductID: productID})
	return nil
}

func (s *wishlistService) Contains(ctx context.Context, sessionID string, productID int64) (bool, error) {
	if sessionID == "" {
		return false, model.ErrInvalidSession
	}
	wishlist, err := s.wishlists.Find(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return wishlist.Contains(productID), nil
}

func (s *wishlistService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return model.ErrInvalidSession
	}

	unlock := s.sessions.lock(sessionID)
	defer unlock()

	return s.wishlists.Delete(ctx, sessionID)
}

func (s *wishlistService) store(ctx context.Context, wishlist *model.Wishlist) error {
	wishlist.UpdatedAt = time.Now().UTC()
	return s.wishlists.Store(ctx, wishlist)
}
