package redis

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

const wishlistKeyPrefix = "greenlink:wishlist:"

// WishlistRepository keeps one JSON document per session. Saved products do not expire.
type WishlistRepository struct {
	client *redis.Client
}

func NewWishlistRepository(client *redis.Client) *WishlistRepository {
	return &WishlistRepository{client: client}
}

func (r *WishlistRepository) Find(ctx context.Context, sessionID string) (*model.Wishlist, error) {
	data, err := r.client.Get(ctx, wishlistKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewWishlist(sessionID), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load wishlist %s", sessionID)
	}

	var wishlist model.Wishlist
	if err := json.Unmarshal(data, &wishlist); err != nil {
		return nil, errors.Wrapf(err, "decode wishlist %s", sessionID)
	}
	if wishlist.ProductIDs == nil {
		wishlist.ProductIDs = []int64{}
	}
	return &wishlist, nil
}

func (r *WishlistRepository) Store(ctx context.Context, wishlist *model.Wishlist) error {
	data, err := json.Marshal(wishlist)
	if err != nil {
		return errors.Wrapf(err, "encode wishlist %s", wishlist.SessionID)
	}
	return errors.Wrapf(r.client.Set(ctx, wishlistKey(wishlist.SessionID), data, 0).Err(), "store wishlist %s", wishlist.SessionID)
}

func (r *WishlistRepository) Delete(ctx context.Context, sessionID string) error {
	return errors.Wrapf(r.client.Del(ctx, wishlistKey(sessionID)).Err(), "delete wishlist %s", sessionID)
}

func wishlistKey(sessionID string) string {
	return wishlistKeyPrefix + sessionID
}
