package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type OrderRepository struct {
	mu    sync.RWMutex
	store map[uuid.UUID]*model.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{store: make(map[uuid.UUID]*model.Order)}
}

func (r *OrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *OrderRepository) Create(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepository) Update(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[order.ID]
	if !ok {
		return model.ErrOrderNotFound
	}
	if existing.Version != order.Version-1 {
		return model.ErrOptimisticLock
	}
	r.store[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepository) Find(_ context.Context, id uuid.UUID) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.store[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *OrderRepository) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []model.Order{}
	for _, o := range r.store {
		if o.CustomerID == customerID {
			orders = append(orders, *cloneOrder(o))
		}
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (r *OrderRepository) FindAll(_ context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]model.Order, 0, len(r.store))
	for _, o := range r.store {
		orders = append(orders, *cloneOrder(o))
	}
	sortNewestFirst(orders)
	return orders, nil
}

func cloneOrder(order *model.Order) *model.Order {
	clone := *order
	clone.Items = append([]model.OrderItem(nil), order.Items...)
	return &clone
}

func sortNewestFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
