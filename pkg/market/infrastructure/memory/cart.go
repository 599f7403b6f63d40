package memory

import (
	"context"
	"sync"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

// CartRepository keeps carts for the lifetime of the process. Used when no Redis is configured.
type CartRepository struct {
	mu    sync.RWMutex
	store map[string]*model.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{store: make(map[string]*model.Cart)}
}

func (r *CartRepository) Find(_ context.Context, sessionID string) (*model.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.store[sessionID]
	if !ok {
		return model.NewCart(sessionID), nil
	}
	return cloneCart(cart), nil
}

func (r *CartRepository) Store(_ context.Context, cart *model.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[cart.SessionID] = cloneCart(cart)
	return nil
}

func (r *CartRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, sessionID)
	return nil
}

func cloneCart(cart *model.Cart) *model.Cart {
	clone := *cart
	clone.Lines = append([]model.BillLine{}, cart.Lines...)
	return &clone
}
