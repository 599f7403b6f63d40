package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

const defaultPayerName = "Customer"

type PaymentConfig struct {
	PayeeID      string
	PayeeName    string
	Currency     string
	CategoryCode string
}

// CodeEncoder renders payment request content as a scannable image.
type CodeEncoder interface {
	Encode(content string) ([]byte, error)
}

type PaymentService interface {
	PaymentRequest(ctx context.Context, requesterID, orderID uuid.UUID) (*model.PaymentRequest, error)
	PaymentCode(ctx context.Context, requesterID, orderID uuid.UUID) ([]byte, error)
}

func NewPaymentService(cfg PaymentConfig, orders model.OrderRepository, profiles model.ProfileRepository, encoder CodeEncoder) PaymentService {
	return &paymentService{cfg: cfg, orders: orders, profiles: profiles, encoder: encoder}
}

type paymentService struct {
	cfg      PaymentConfig
	orders   model.OrderRepository
	profiles model.ProfileRepository
	encoder  CodeEncoder
}

func (s *paymentService) PaymentRequest(ctx context.Context, requesterID, orderID uuid.UUID) (*model.PaymentRequest, error) {
	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != requesterID {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.OrderStatusPending {
		return nil, model.ErrOrderCannotBeModified
	}

	payer, err := s.payerName(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	return &model.PaymentRequest{
		PayeeID:       s.cfg.PayeeID,
		PayeeName:     s.cfg.PayeeName,
		Amount:        order.GrandTotal,
		Note:          "Payment to " + s.cfg.PayeeName + " by " + payer,
		TransactionID: order.TransactionRef,
		Currency:      s.cfg.Currency,
		CategoryCode:  s.cfg.CategoryCode,
	}, nil
}

// PaymentCode fails with model.ErrEncodingFailure when the image cannot be produced.
// The caller shows the failure, nothing is retried.
func (s *paymentService) PaymentCode(ctx context.Context, requesterID, orderID uuid.UUID) ([]byte, error) {
	request, err := s.PaymentRequest(ctx, requesterID, orderID)
	if err != nil {
		return nil, err
	}

	image, err := s.encoder.Encode(request.URI())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrEncodingFailure, err)
	}
	return image, nil
}

func (s *paymentService) payerName(ctx context.Context, requesterID uuid.UUID) (string, error) {
	if requesterID == uuid.Nil {
		return defaultPayerName, nil
	}
	profile, err := s.profiles.Find(ctx, requesterID)
	if errors.Is(err, model.ErrProfileNotFound) {
		return defaultPayerName, nil
	}
	if err != nil {
		return "", err
	}
	switch {
	case profile.FullName != "":
		return profile.FullName, nil
	case profile.Email != "":
		return profile.Email, nil
	case profile.Username != "":
		return profile.Username, nil
	}
	return defaultPayerName, nil
}
