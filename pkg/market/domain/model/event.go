package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductCreated struct {
	ProductID int64
	Name      string
	FarmerID  uuid.NullUUID
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductUpdated struct {
	ProductID int64
}

func (e ProductUpdated) Type() string { return "ProductUpdated" }

type ProductDeleted struct {
	ProductID int64
}

func (e ProductDeleted) Type() string { return "ProductDeleted" }

type ProductStockChanged struct {
	ProductID    int64
	ChangeAmount decimal.Decimal // negative on purchase, positive on release
	NewQuantity  decimal.Decimal
}

func (e ProductStockChanged) Type() string { return "ProductStockChanged" }

type ItemAddedToCart struct {
	SessionID string
	LineID    uuid.UUID
	ProductID int64
	LineTotal decimal.Decimal
}

func (e ItemAddedToCart) Type() string { return "ItemAddedToCart" }

type ItemRemovedFromCart struct {
	SessionID string
	LineID    uuid.UUID
}

func (e ItemRemovedFromCart) Type() string { return "ItemRemovedFromCart" }

type ProductWishlisted struct {
	SessionID string
	ProductID int64
}

func (e ProductWishlisted) Type() string { return "ProductWishlisted" }

type ProductUnwishlisted struct {
	SessionID string
	ProductID int64
}

func (e ProductUnwishlisted) Type() string { return "ProductUnwishlisted" }

type OrderSubmittedForPayment struct {
	OrderID        uuid.UUID
	GrandTotal     decimal.Decimal
	TransactionRef string
}

func (e OrderSubmittedForPayment) Type() string { return "OrderSubmittedForPayment" }

type OrderPaid struct {
	OrderID uuid.UUID
}

func (e OrderPaid) Type() string { return "OrderPaid" }

type OrderCancelled struct {
	OrderID uuid.UUID
	Reason  string
}

func (e OrderCancelled) Type() string { return "OrderCancelled" }

type OrderStatusChanged struct {
	OrderID       uuid.UUID
	Status        OrderStatus
	PaymentStatus PaymentStatus
}

func (e OrderStatusChanged) Type() string { return "OrderStatusChanged" }

type ProfileUpdated struct {
	ProfileID uuid.UUID
}

func (e ProfileUpdated) Type() string { return "ProfileUpdated" }

type ProfileDeleted struct {
	ProfileID uuid.UUID
}

func (e ProfileDeleted) Type() string { return "ProfileDeleted" }

type VehicleListed struct {
	VehicleID int64
	Name      string
}

func (e VehicleListed) Type() string { return "VehicleListed" }

type VehicleBooked struct {
	VehicleID int64
	RenterID  uuid.UUID
}

func (e VehicleBooked) Type() string { return "VehicleBooked" }
