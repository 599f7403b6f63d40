package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

const cartKeyPrefix = "greenlink:cart:"

// CartRepository stores each session's cart as one JSON document. Every write renews
// the TTL, so abandoned carts expire on their own.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

// Connect parses addr as a redis:// URL or a plain host:port and pings the server.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		opt = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "connect to redis")
	}
	return client, nil
}

func (r *CartRepository) Find(ctx context.Context, sessionID string) (*model.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewCart(sessionID), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load cart %s", sessionID)
	}

	var cart model.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, errors.Wrapf(err, "decode cart %s", sessionID)
	}
	if cart.Lines == nil {
		cart.Lines = []model.BillLine{}
	}
	return &cart, nil
}

func (r *CartRepository) Store(ctx context.Context, cart *model.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrapf(err, "encode cart %s", cart.SessionID)
	}
	return errors.Wrapf(r.client.Set(ctx, cartKey(cart.SessionID), data, r.ttl).Err(), "store cart %s", cart.SessionID)
}

func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	return errors.Wrapf(r.client.Del(ctx, cartKey(sessionID)).Err(), "delete cart %s", sessionID)
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}
