package model

import (
	"context"
	"time"
)

// Wishlist holds the products a shopper saved for later, in the order they were added.
type Wishlist struct {
	SessionID  string    `json:"session_id"`
	ProductIDs []int64   `json:"product_ids"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewWishlist(sessionID string) *Wishlist {
	return &Wishlist{SessionID: sessionID, ProductIDs: []int64{}}
}

// Add reports false when the product is already saved.
func (w *Wishlist) Add(productID int64) bool {
	if w.Contains(productID) {
		return false
	}
	w.ProductIDs = append(w.ProductIDs, productID)
	return true
}

// Remove reports false when the product was not saved.
func (w *Wishlist) Remove(productID int64) bool {
	for i, id := range w.ProductIDs {
		if id == productID {
			w.ProductIDs = append(w.ProductIDs[:i], w.ProductIDs[i+1:]...)
			return true
		}
	}
	return false
}

func (w *Wishlist) Contains(productID int64) bool {
	for _, id := range w.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Clear() {
	w.ProductIDs = []int64{}
}

func (w *Wishlist) IsEmpty() bool {
	return len(w.ProductIDs) == 0
}

type WishlistRepository interface {
	// Find returns an empty wishlist when the session has none yet.
	Find(ctx context.Context, sessionID string) (*Wishlist, error)
	Store(ctx context.Context, wishlist *Wishlist) error
	Delete(ctx context.Context, sessionID string) error
}
