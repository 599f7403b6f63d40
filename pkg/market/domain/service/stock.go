package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

// releaseStock is the compensation step for a decrement that must be voided.
// Failures are logged and not retried.
func releaseStock(ctx context.Context, products model.ProductRepository, dispatcher EventDispatcher, productID int64, kilograms decimal.Decimal) {
	product, err := products.RestoreStock(ctx, productID, kilograms)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"product_id": productID,
			"kilograms":  kilograms.String(),
		}).Error("failed to restore stock")
		return
	}
	dispatchEvents(dispatcher, model.ProductStockChanged{
		ProductID:    productID,
		ChangeAmount: kilograms,
		NewQuantity:  product.Quantity,
	})
}

// isAdmin treats an unknown requester as a regular customer.
func isAdmin(ctx context.Context, profiles model.ProfileRepository, requesterID uuid.UUID) (bool, error) {
	profile, err := profiles.Find(ctx, requesterID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return false, nil
		}
		return false, err
	}
	return profile.IsAdmin(), nil
}
