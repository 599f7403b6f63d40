package transport

import (
	"encoding/json"
	"net/http"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
)

type orderItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  json.RawMessage `json:"quantity"`
	Unit      string          `json:"unit"`
}

// createOrderRequest has no total field. Whatever total the client computed is ignored.
type createOrderRequest struct {
	Items []orderItemRequest `json:"items"`
}

type updateOrderRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.services.Orders.ListOrders(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	order, err := h.services.Orders.GetOrder(r.Context(), currentUser(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decode(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]service.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		quantity, err := model.ParseQuantity(numberText(item.Quantity))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		unit, err := model.ParseUnit(item.Unit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		items = append(items, service.OrderItemRequest{ProductID: item.ProductID, Quantity: quantity, Unit: unit})
	}

	order, err := h.services.Orders.CreateOrder(r.Context(), currentUser(r), items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req updateOrderRequest
	if err := decode(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	var status *model.OrderStatus
	if req.Status != nil {
		parsed, err := model.ParseOrderStatus(*req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		status = &parsed
	}
	var paymentStatus *model.PaymentStatus
	if req.PaymentStatus != nil {
		parsed, err := model.ParsePaymentStatus(*req.PaymentStatus)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		paymentStatus = &parsed
	}

	order, err := h.services.Orders.UpdateStatus(r.Context(), currentUser(r), id, status, paymentStatus)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
