package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

const recentOrdersLimit = 5

type Dashboard struct {
	TotalProducts int             `json:"total_products"`
	TotalOrders   int             `json:"total_orders"`
	TotalUsers    int             `json:"total_users"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	RecentOrders  []model.Order   `json:"recent_orders"`
}

type SaleItem struct {
	Kilograms decimal.Decimal `json:"kilograms"`
	Category  string          `json:"category"`
}

type Sale struct {
	OrderID       uuid.UUID           `json:"order_id"`
	CreatedAt     time.Time           `json:"created_at"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Status        model.OrderStatus   `json:"status"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	Items         []SaleItem          `json:"items"`
}

type ProductStats struct {
	model.Product
	TotalSold    decimal.Decimal `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type AnalyticsService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Sales(ctx context.Context) ([]Sale, error)
	ProductStats(ctx context.Context) ([]ProductStats, error)
}

func NewAnalyticsService(products model.ProductRepository, orders model.OrderRepository, profiles model.ProfileRepository) AnalyticsService {
	return &analyticsService{products: products, orders: orders, profiles: profiles}
}

type analyticsService struct {
	products model.ProductRepository
	orders   model.OrderRepository
	profiles model.ProfileRepository
}

// Dashboard counts revenue only from orders whose payment completed.
func (s *analyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.newestOrders(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.profiles.Count(ctx)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, order := range orders {
		if order.PaymentStatus == model.PaymentStatusCompleted {
			revenue = revenue.Add(order.GrandTotal)
		}
	}

	recent := orders
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}

	return &Dashboard{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		TotalUsers:    users,
		TotalRevenue:  model.RoundCurrency(revenue),
		RecentOrders:  recent,
	}, nil
}

func (s *analyticsService) Sales(ctx context.Context) ([]Sale, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	categories := make(map[int64]string, len(products))
	for _, p := range products {
		categories[p.ID] = p.Category
	}

	orders, err := s.newestOrders(ctx)
	if err != nil {
		return nil, err
	}

	sales := make([]Sale, 0, len(orders))
	for _, order := range orders {
		sale := Sale{
			OrderID:       order.ID,
			CreatedAt:     order.CreatedAt,
			TotalAmount:   order.GrandTotal,
			Status:        order.Status,
			PaymentStatus: order.PaymentStatus,
			Items:         make([]SaleItem, 0, len(order.Items)),
		}
		for _, item := range order.Items {
			sale.Items = append(sale.Items, SaleItem{Kilograms: item.Kilograms, Category: categories[item.ProductID]})
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

// ProductStats reports kilograms sold and revenue per product. Cancelled orders gave
// their stock back and are not counted.
func (s *analyticsService) ProductStats(ctx context.Context) ([]ProductStats, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sold := make(map[int64]decimal.Decimal)
	revenue := make(map[int64]decimal.Decimal)
	for _, order := range orders {
		if order.Status == model.OrderStatusCancelled {
			continue
		}
		for _, item := range order.Items {
			sold[item.ProductID] = sold[item.ProductID].Add(item.Kilograms)
			revenue[item.ProductID] = revenue[item.ProductID].Add(item.TotalPrice)
		}
	}

	stats := make([]ProductStats, 0, len(products))
	for _, p := range products {
		stats = append(stats, ProductStats{
			Product:      p,
			TotalSold:    sold[p.ID],
			TotalRevenue: model.RoundCurrency(revenue[p.ID]),
		})
	}
	return stats, nil
}

func (s *analyticsService) newestOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
