package event

import (
	log "github.com/sirupsen/logrus"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
)

// SubscribeAlerts registers the handlers that warn operators about stock running out.
func SubscribeAlerts(d *Dispatcher) {
	d.Subscribe(model.ProductStockChanged{}.Type(), soldOutAlert)
}

func soldOutAlert(e service.Event) error {
	changed, ok := e.(model.ProductStockChanged)
	if !ok || changed.NewQuantity.IsPositive() {
		return nil
	}
	log.WithFields(log.Fields{
		"product_id": changed.ProductID,
		"change":     changed.ChangeAmount.String(),
	}).Warn("product sold out")
	return nil
}
