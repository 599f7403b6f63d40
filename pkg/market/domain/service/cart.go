package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type CartService interface {
	AddToCart(ctx context.Context, sessionID string, productID int64, quantity decimal.Decimal, unit model.Unit) (*model.BillLine, error)
	RemoveFromCart(ctx context.Context, sessionID string, lineID uuid.UUID) error
	GetCart(ctx context.Context, sessionID string) (*model.Cart, error)
	CartTotal(ctx context.Context, sessionID string) (decimal.Decimal, error)
	CartCount(ctx context.Context, sessionID string) (decimal.Decimal, error)

	Checkout(ctx context.Context, sessionID string, customerID uuid.UUID) (*model.Order, error)
	CompletePayment(ctx context.Context, sessionID string, orderID uuid.UUID) (*model.Order, error)
	CancelPayment(ctx context.Context, sessionID string, orderID uuid.UUID) (*model.Order, error)
}

func NewCartService(
	products model.ProductRepository,
	carts model.CartRepository,
	orders model.OrderRepository,
	dispatcher EventDispatcher,
) CartService {
	return &cartService{
		products:   products,
		carts:      carts,
		orders:     orders,
		dispatcher: dispatcher,
		sessions:   newSessionLocks(),
	}
}

type cartService struct {
	products   model.ProductRepository
	carts      model.CartRepository
	orders     model.OrderRepository
	dispatcher EventDispatcher
	sessions   *sessionLocks
}

func (s *cartService) AddToCart(ctx context.Context, sessionID string, productID int64, quantity decimal.Decimal, unit model.Unit) (*model.BillLine, error) {
	if sessionID == "" {
		return nil, model.ErrInvalidSession
	}
	if !quantity.IsPositive() {
		return nil, model.ErrInvalidQuantity
	}
	kilograms, err := model.ToKilograms(quantity, unit)
	if err != nil {
		return nil, err
	}

	unlock := s.sessions.lock(sessionID)
	defer unlock()

	cart, err := s.carts.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.DecrementStock(ctx, productID, kilograms)
	if err != nil {
		return nil, err
	}

	line := model.BillLine{
		ID:          uuid.New(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Unit:        unit,
		UnitPrice:   product.Price,
		Kilograms:   kilograms,
		LineTotal:   model.LineTotal(product.Price, kilograms),
	}
	cart.Lines = append(cart.Lines, line)
	cart.UpdatedAt = time.Now().UTC()

	if err := s.carts.Store(ctx, cart); err != nil {
		s.restoreStock(ctx, productID, kilograms)
		return nil, err
	}

	dispatchEvents(s.dispatcher,
		model.ProductStockChanged{ProductID: product.ID, ChangeAmount: kilograms.Neg(), NewQuantity: product.Quantity},
		model.ItemAddedToCart{SessionID: sessionID, LineID: line.ID, ProductID: product.ID, LineTotal: line.LineTotal},
	)
	return &line, nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, sessionID string, lineID uuid.UUID) error {
	unlock := s.sessions.lock(sessionID)
	defer unlock()

	cart, err := s.carts.Find(ctx, sessionID)
	if err != nil {
		return err
	}

	line, err := cart.RemoveLine(lineID)
	if err != nil {
		return err
	}
	cart.UpdatedAt = time.Now().UTC()

	if err := s.carts.Store(ctx, cart); err != nil {
		return err
	}

	s.restoreStock(ctx, line.ProductID, line.Kilograms)
	dispatchEvents(s.dispatcher, model.ItemRemovedFromCart{SessionID: sessionID, LineID: lineID})
	return nil
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	if sessionID == "" {
		return nil, model.ErrInvalidSession
	}
	return s.carts.Find(ctx, sessionID)
}

func (s *cartService) CartTotal(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.PresentedTotal(), nil
}

func (s *cartService) CartCount(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.Count(), nil
}

func (s *cartService) Checkout(ctx context.Context, sessionID string, customerID uuid.UUID) (*model.Order, error) {
	if sessionID == "" {
		return nil, model.ErrInvalidSession
	}

	unlock := s.sessions.lock(sessionID)
	defer unlock()

	cart, err := s.carts.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.PendingOrderID.Valid {
		settled, err := s.releaseSettledOrder(ctx, cart)
		if err != nil {
			return nil, err
		}
		if !settled {
			return nil, model.ErrPaymentInProgress
		}
	}
	if cart.IsEmpty() {
		return nil, model.ErrCartIsEmpty
	}

	orderID, err := s.orders.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:             orderID,
		CustomerID:     customerID,
		GrandTotal:     cart.PresentedTotal(),
		Status:         model.OrderStatusPending,
		PaymentStatus:  model.PaymentStatusPending,
		TransactionRef: model.NewTransactionRef(),
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, line := range cart.Lines {
		order.Items = append(order.Items, model.NewOrderItem(orderID, line))
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	cart.Lines = []model.BillLine{}
	cart.PendingOrderID = uuid.NullUUID{UUID: orderID, Valid: true}
	cart.UpdatedAt = now
	if err := s.carts.Store(ctx, cart); err != nil {
		// The stored cart still owns the lines and their stock, so only the order is voided.
		s.voidOrder(ctx, order)
		return nil, err
	}

	dispatchEvents(s.dispatcher, model.OrderSubmittedForPayment{
		OrderID:        orderID,
		GrandTotal:     order.GrandTotal,
		TransactionRef: order.TransactionRef,
	})
	return order, nil
}

// CompletePayment and CancelPayment release the session from an order that was already
// settled elsewhere and return it unchanged.
func (s *cartService) CompletePayment(ctx context.Context, sessionID string, orderID uuid.UUID) (*model.Order, error) {
	order, _, err := s.finishPayment(ctx, sessionID, orderID, func(order *model.Order) Event {
		order.Status = model.OrderStatusPaid
		order.PaymentStatus = model.PaymentStatusCompleted
		return model.OrderPaid{OrderID: order.ID}
	})
	return order, err
}

func (s *cartService) CancelPayment(ctx context.Context, sessionID string, orderID uuid.UUID) (*model.Order, error) {
	order, changed, err := s.finishPayment(ctx, sessionID, orderID, func(order *model.Order) Event {
		order.Status = model.OrderStatusCancelled
		order.PaymentStatus = model.PaymentStatusFailed
		return model.OrderCancelled{OrderID: order.ID, Reason: "payment cancelled by shopper"}
	})
	if err != nil {
		return nil, err
	}

	if changed {
		for _, item := range order.Items {
			s.restoreStock(ctx, item.ProductID, item.Kilograms)
		}
	}
	return order, nil
}

func (s *cartService) finishPayment(ctx context.Context, sessionID string, orderID uuid.UUID, transition func(order *model.Order) Event) (*model.Order, bool, error) {
	unlock := s.sessions.lock(sessionID)
	defer unlock()

	cart, err := s.carts.Find(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if !cart.PendingOrderID.Valid || cart.PendingOrderID.UUID != orderID {
		return nil, false, model.ErrOrderNotFound
	}

	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		return nil, false, err
	}
	if order.Status != model.OrderStatusPending {
		if err := s.clearPendingOrder(ctx, cart); err != nil {
			return nil, false, err
		}
		return order, false, nil
	}

	event := transition(order)
	order.Version++
	order.UpdatedAt = time.Now().UTC()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, false, err
	}

	if err := s.clearPendingOrder(ctx, cart); err != nil {
		return nil, false, err
	}

	dispatchEvents(s.dispatcher, event)
	return order, true, nil
}

// releaseSettledOrder clears the pending reference when its order is gone or no longer
// awaits payment, for example after a cancel through the orders API.
func (s *cartService) releaseSettledOrder(ctx context.Context, cart *model.Cart) (bool, error) {
	order, err := s.orders.Find(ctx, cart.PendingOrderID.UUID)
	switch {
	case errors.Is(err, model.ErrOrderNotFound):
	case err != nil:
		return false, err
	case order.Status == model.OrderStatusPending:
		return false, nil
	}
	return true, s.clearPendingOrder(ctx, cart)
}

func (s *cartService) clearPendingOrder(ctx context.Context, cart *model.Cart) error {
	cart.PendingOrderID = uuid.NullUUID{}
	cart.UpdatedAt = time.Now().UTC()
	return s.carts.Store(ctx, cart)
}

// voidOrder cancels an order whose cart could not be updated. Failures are logged, not retried.
func (s *cartService) voidOrder(ctx context.Context, order *model.Order) {
	order.Status = model.OrderStatusCancelled
	order.PaymentStatus = model.PaymentStatusFailed
	order.Version++
	order.UpdatedAt = time.Now().UTC()
	if err := s.orders.Update(ctx, order); err != nil {
		log.WithError(err).WithField("order_id", order.ID).Error("failed to void order")
		return
	}
	dispatchEvents(s.dispatcher, model.OrderCancelled{OrderID: order.ID, Reason: "cart could not be stored"})
}

func (s *cartService) restoreStock(ctx context.Context, productID int64, kilograms decimal.Decimal) {
	releaseStock(ctx, s.products, s.dispatcher, productID, kilograms)
}
