package memory

import (
	"context"
	"sync"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type WishlistRepository struct {
	mu    sync.RWMutex
	store map[string]*model.Wishlist
}

func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{store: make(map[string]*model.Wishlist)}
}

func (r *WishlistRepository) Find(_ context.Context, sessionID string) (*model.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wishlist, ok := r.store[sessionID]
	if !ok {
		return model.NewWishlist(sessionID), nil
	}
	return cloneWishlist(wishlist), nil
}

func (r *WishlistRepository) Store(_ context.Context, wishlist *model.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[wishlist.SessionID] = cloneWishlist(wishlist)
	return nil
}

func (r *WishlistRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, sessionID)
	return nil
}

func cloneWishlist(wishlist *model.Wishlist) *model.Wishlist {
	clone := *wishlist
	clone.ProductIDs = append([]int64{}, wishlist.ProductIDs...)
	return &clone
}
