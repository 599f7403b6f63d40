package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

// ProductInput carries the editable fields of a listing.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    decimal.Decimal
	Category    string
	Image       string
	Alt         string
	Rating      *float64
	ReviewCount int
	// Version is the version the caller last read. Zero skips the check.
	Version int
}

type CatalogService interface {
	CreateProduct(ctx context.Context, farmerID uuid.NullUUID, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, requesterID uuid.UUID, id int64, input ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, requesterID uuid.UUID, id int64) error
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

func NewCatalogService(repo model.ProductRepository, profiles model.ProfileRepository, dispatcher EventDispatcher) CatalogService {
	return &catalogService{repo: repo, profiles: profiles, dispatcher: dispatcher}
}

type catalogService struct {
	repo       model.ProductRepository
	profiles   model.ProfileRepository
	dispatcher EventDispatcher
}

func (s *catalogService) CreateProduct(ctx context.Context, farmerID uuid.NullUUID, input ProductInput) (*model.Product, error) {
	now := time.Now().UTC()
	product := &model.Product{
		FarmerID:  farmerID,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.applyTo(product)
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	dispatchEvents(s.dispatcher, model.ProductCreated{ProductID: product.ID, Name: product.Name, FarmerID: farmerID})
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, requesterID uuid.UUID, id int64, input ProductInput) (*model.Product, error) {
	product, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, requesterID, product); err != nil {
		return nil, err
	}
	if input.Version != 0 && input.Version != product.Version {
		return nil, model.ErrOptimisticLock
	}

	input.applyTo(product)
	if err := product.Validate(); err != nil {
		return nil, err
	}

	product.Version++
	product.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	dispatchEvents(s.dispatcher, model.ProductUpdated{ProductID: id})
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, requesterID uuid.UUID, id int64) error {
	product, err := s.repo.Find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkOwner(ctx, requesterID, product); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	dispatchEvents(s.dispatcher, model.ProductDeleted{ProductID: id})
	return nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.repo.Find(ctx, id)
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *catalogService) Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(products), nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return model.Categories(products), nil
}

// checkOwner lets the listing farmer and admins edit a product. Catalog items without a
// farmer belong to admins.
func (s *catalogService) checkOwner(ctx context.Context, requesterID uuid.UUID, product *model.Product) error {
	if product.FarmerID.Valid && product.FarmerID.UUID == requesterID {
		return nil
	}
	admin, err := isAdmin(ctx, s.profiles, requesterID)
	if err != nil {
		return err
	}
	if !admin {
		return model.ErrUnauthorized
	}
	return nil
}

func (in ProductInput) applyTo(p *model.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Category = in.Category
	p.Image = in.Image
	p.Alt = in.Alt
	p.Rating = in.Rating
	p.ReviewCount = in.ReviewCount
}
