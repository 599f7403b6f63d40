package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type OrderItemRequest struct {
	ProductID int64
	Quantity  decimal.Decimal
	Unit      model.Unit
}

type OrderService interface {
	GetOrder(ctx context.Context, requesterID, orderID uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)
	CreateOrder(ctx context.Context, customerID uuid.UUID, items []OrderItemRequest) (*model.Order, error)
	UpdateStatus(ctx context.Context, requesterID, orderID uuid.UUID, status *model.OrderStatus, paymentStatus *model.PaymentStatus) (*model.Order, error)
}

func NewOrderService(
	products model.ProductRepository,
	orders model.OrderRepository,
	profiles model.ProfileRepository,
	dispatcher EventDispatcher,
) OrderService {
	return &orderService{
		products:   products,
		orders:     orders,
		profiles:   profiles,
		dispatcher: dispatcher,
	}
}

type orderService struct {
	products   model.ProductRepository
	orders     model.OrderRepository
	profiles   model.ProfileRepository
	dispatcher EventDispatcher
}

func (s *orderService) GetOrder(ctx context.Context, requesterID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, requesterID, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	return s.orders.FindByCustomer(ctx, customerID)
}

// CreateOrder prices every item from the catalog. Totals sent by clients are never trusted.
func (s *orderService) CreateOrder(ctx context.Context, customerID uuid.UUID, items []OrderItemRequest) (*model.Order, error) {
	if len(items) == 0 {
		return nil, model.ErrOrderHasNoItems
	}
	kilograms := make([]decimal.Decimal, len(items))
	for i, item := range items {
		if !item.Unit.Valid() {
			return nil, model.ErrInvalidUnit
		}
		kg, err := model.ToKilograms(item.Quantity, item.Unit)
		if err != nil {
			return nil, err
		}
		kilograms[i] = kg
	}

	orderID, err := s.orders.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:             orderID,
		CustomerID:     customerID,
		Status:         model.OrderStatusPending,
		PaymentStatus:  model.PaymentStatusPending,
		TransactionRef: model.NewTransactionRef(),
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var events []Event
	for i, item := range items {
		product, err := s.products.DecrementStock(ctx, item.ProductID, kilograms[i])
		if err != nil {
			s.voidItems(ctx, order.Items)
			return nil, err
		}

		order.Items = append(order.Items, model.OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   product.Price,
			Kilograms:   kilograms[i],
			TotalPrice:  model.LineTotal(product.Price, kilograms[i]),
		})
		events = append(events, model.ProductStockChanged{
			ProductID:    product.ID,
			ChangeAmount: kilograms[i].Neg(),
			NewQuantity:  product.Quantity,
		})
	}
	order.GrandTotal = order.ItemsTotal()

	if err := s.orders.Create(ctx, order); err != nil {
		s.voidItems(ctx, order.Items)
		return nil, err
	}

	events = append(events, model.OrderSubmittedForPayment{
		OrderID:        orderID,
		GrandTotal:     order.GrandTotal,
		TransactionRef: order.TransactionRef,
	})
	dispatchEvents(s.dispatcher, events...)
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, requesterID, orderID uuid.UUID, status *model.OrderStatus, paymentStatus *model.PaymentStatus) (*model.Order, error) {
	if status == nil && paymentStatus == nil {
		return nil, model.ErrInvalidOrderStatus
	}

	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, requesterID, order); err != nil {
		return nil, err
	}

	cancelled := false
	if status != nil {
		if !order.Status.CanTransitionTo(*status) {
			return nil, model.ErrOrderCannotBeModified
		}
		cancelled = order.Status != model.OrderStatusCancelled && *status == model.OrderStatusCancelled
		order.Status = *status
	}
	if paymentStatus != nil {
		if !order.PaymentStatus.CanTransitionTo(*paymentStatus) {
			return nil, model.ErrOrderCannotBeModified
		}
		order.PaymentStatus = *paymentStatus
	}

	order.Version++
	order.UpdatedAt = time.Now().UTC()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if cancelled {
		s.voidItems(ctx, order.Items)
	}
	dispatchEvents(s.dispatcher, model.OrderStatusChanged{
		OrderID:       orderID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
	})
	return order, nil
}

// checkAccess hides other customers' orders behind ErrOrderNotFound unless the requester is an admin.
func (s *orderService) checkAccess(ctx context.Context, requesterID uuid.UUID, order *model.Order) error {
	if order.CustomerID == requesterID {
		return nil
	}
	admin, err := isAdmin(ctx, s.profiles, requesterID)
	if err != nil {
		return err
	}
	if !admin {
		return model.ErrOrderNotFound
	}
	return nil
}

func (s *orderService) voidItems(ctx context.Context, items []model.OrderItem) {
	for _, item := range items {
		releaseStock(ctx, s.products, s.dispatcher, item.ProductID, item.Kilograms)
	}
}
