package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

// ProductRepository is the session catalog snapshot. All stock changes happen under one lock.
type ProductRepository struct {
	mu     sync.Mutex
	nextID int64
	store  map[int64]*model.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{nextID: 1, store: make(map[int64]*model.Product)}
}

func (r *ProductRepository) Create(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	clone := *product
	r.store[product.ID] = &clone
	return nil
}

func (r *ProductRepository) Update(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[product.ID]
	if !ok {
		return model.ErrProductNotFound
	}
	if existing.Version != product.Version-1 {
		return model.ErrOptimisticLock
	}
	clone := *product
	r.store[product.ID] = &clone
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *ProductRepository) Find(_ context.Context, id int64) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.store[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *ProductRepository) FindAll(_ context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := make([]model.Product, 0, len(r.store))
	for _, p := range r.store {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *ProductRepository) DecrementStock(_ context.Context, id int64, kilograms decimal.Decimal) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.store[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	if kilograms.GreaterThan(product.Quantity) {
		return nil, &model.InsufficientStockError{
			ProductID:   id,
			ProductName: product.Name,
			Requested:   kilograms,
			Available:   product.Quantity,
		}
	}

	product.Quantity = product.Quantity.Sub(kilograms)
	product.Version++
	clone := *product
	return &clone, nil
}

func (r *ProductRepository) RestoreStock(_ context.Context, id int64, kilograms decimal.Decimal) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.store[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}

	product.Quantity = product.Quantity.Add(kilograms)
	product.Version++
	clone := *product
	return &clone, nil
}
