package tests

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
)

var errStoreUnavailable = errors.New("store unavailable")

type mockProductRepository struct {
	mu     sync.Mutex
	nextID int64
	store  map[int64]*model.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{nextID: 1, store: make(map[int64]*model.Product)}
}

func (m *mockProductRepository) Create(_ context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}
func (m *mockProductRepository) Update(_ context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.store[p.ID]
	if !ok {
		return model.ErrProductNotFound
	}
	if existing.Version != p.Version-1 {
		return model.ErrOptimisticLock
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}
func (m *mockProductRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(m.store, id)
	return nil
}
func (m *mockProductRepository) Find(_ context.Context, id int64) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.store[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, model.ErrProductNotFound
}
func (m *mockProductRepository) FindAll(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]model.Product, 0, len(m.store))
	for _, p := range m.store {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
func (m *mockProductRepository) DecrementStock(_ context.Context, id int64, kg decimal.Decimal) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	if kg.GreaterThan(p.Quantity) {
		return nil, &model.InsufficientStockError{ProductID: id, ProductName: p.Name, Requested: kg, Available: p.Quantity}
	}
	p.Quantity = p.Quantity.Sub(kg)
	p.Version++
	clone := *p
	return &clone, nil
}
func (m *mockProductRepository) RestoreStock(_ context.Context, id int64, kg decimal.Decimal) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	p.Quantity = p.Quantity.Add(kg)
	p.Version++
	clone := *p
	return &clone, nil
}

type mockCartRepository struct {
	mu        sync.Mutex
	store     map[string]model.Cart
	failStore bool
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{store: make(map[string]model.Cart)}
}

func (m *mockCartRepository) Find(_ context.Context, sessionID string) (*model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.store[sessionID]
	if !ok {
		return model.NewCart(sessionID), nil
	}
	cart.Lines = append([]model.BillLine{}, cart.Lines...)
	return &cart, nil
}
func (m *mockCartRepository) Store(_ context.Context, cart *model.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failStore {
		return errStoreUnavailable
	}
	clone := *cart
	clone.Lines = append([]model.BillLine{}, cart.Lines...)
	m.store[cart.SessionID] = clone
	return nil
}
func (m *mockCartRepository) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, sessionID)
	return nil
}

type mockWishlistRepository struct {
	mu        sync.Mutex
	store     map[string]model.Wishlist
	failStore bool
}

func newMockWishlistRepository() *mockWishlistRepository {
	return &mockWishlistRepository{store: make(map[string]model.Wishlist)}
}

func (m *mockWishlistRepository) Find(_ context.Context, sessionID string) (*model.Wishlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wishlist, ok := m.store[sessionID]
	if !ok {
		return model.NewWishlist(sessionID), nil
	}
	wishlist.ProductIDs = append([]int64{}, wishlist.ProductIDs...)
	return &wishlist, nil
}
func (m *mockWishlistRepository) Store(_ context.Context, wishlist *model.Wishlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failStore {
		return errStoreUnavailable
	}
	clone := *wishlist
	clone.ProductIDs = append([]int64{}, wishlist.ProductIDs...)
	m.store[wishlist.SessionID] = clone
	return nil
}
func (m *mockWishlistRepository) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, sessionID)
	return nil
}

type mockOrderRepository struct {
	mu         sync.Mutex
	store      map[uuid.UUID]model.Order
	failCreate bool
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{store: make(map[uuid.UUID]model.Order)}
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) { return uuid.New(), nil }
func (m *mockOrderRepository) Create(_ context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return errStoreUnavailable
	}
	m.store[o.ID] = *o
	return nil
}
func (m *mockOrderRepository) Update(_ context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.store[o.ID]
	if !ok {
		return model.ErrOrderNotFound
	}
	if existing.Version != o.Version-1 {
		return model.ErrOptimisticLock
	}
	m.store[o.ID] = *o
	return nil
}
func (m *mockOrderRepository) Find(_ context.Context, id uuid.UUID) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.store[id]; ok {
		return &o, nil
	}
	return nil, model.ErrOrderNotFound
}
func (m *mockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	all, _ := m.FindAll(ctx)
	orders := []model.Order{}
	for _, o := range all {
		if o.CustomerID == customerID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}
func (m *mockOrderRepository) FindAll(_ context.Context) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := make([]model.Order, 0, len(m.store))
	for _, o := range m.store {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

type mockProfileRepository struct {
	store map[uuid.UUID]model.Profile
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{store: make(map[uuid.UUID]model.Profile)}
}

func (m *mockProfileRepository) Create(_ context.Context, p *model.Profile) error {
	m.store[p.ID] = *p
	return nil
}
func (m *mockProfileRepository) Update(_ context.Context, p *model.Profile) error {
	if _, ok := m.store[p.ID]; !ok {
		return model.ErrProfileNotFound
	}
	m.store[p.ID] = *p
	return nil
}
func (m *mockProfileRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrProfileNotFound
	}
	delete(m.store, id)
	return nil
}
func (m *mockProfileRepository) Find(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	if p, ok := m.store[id]; ok {
		return &p, nil
	}
	return nil, model.ErrProfileNotFound
}
func (m *mockProfileRepository) Count(_ context.Context) (int, error) { return len(m.store), nil }

type mockVehicleRepository struct {
	nextID int64
	store  map[int64]model.Vehicle
}

func newMockVehicleRepository() *mockVehicleRepository {
	return &mockVehicleRepository{nextID: 1, store: make(map[int64]model.Vehicle)}
}

func (m *mockVehicleRepository) Create(_ context.Context, v *model.Vehicle) error {
	v.ID = m.nextID
	m.nextID++
	m.store[v.ID] = *v
	return nil
}
func (m *mockVehicleRepository) Update(_ context.Context, v *model.Vehicle) error {
	if _, ok := m.store[v.ID]; !ok {
		return model.ErrVehicleNotFound
	}
	m.store[v.ID] = *v
	return nil
}
func (m *mockVehicleRepository) Find(_ context.Context, id int64) (*model.Vehicle, error) {
	if v, ok := m.store[id]; ok {
		return &v, nil
	}
	return nil, model.ErrVehicleNotFound
}
func (m *mockVehicleRepository) FindAll(_ context.Context) ([]model.Vehicle, error) {
	vehicles := make([]model.Vehicle, 0, len(m.store))
	for _, v := range m.store {
		vehicles = append(vehicles, v)
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID < vehicles[j].ID })
	return vehicles, nil
}

type mockEventDispatcher struct {
	mu     sync.Mutex
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}
func (m *mockEventDispatcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

// Types lists the dispatched event types in order.
func (m *mockEventDispatcher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.Type())
	}
	return types
}

type mockEncoder struct {
	content string
	err     error
}

func (m *mockEncoder) Encode(content string) ([]byte, error) {
	m.content = content
	if m.err != nil {
		return nil, m.err
	}
	return []byte("png:" + content), nil
}

func seedProduct(repo *mockProductRepository, name string, price, quantity string) *model.Product {
	p := &model.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: decimal.RequireFromString(quantity),
		Category: "Vegetables",
		Version:  1,
	}
	_ = repo.Create(context.Background(), p)
	return p
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
