package transport

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type addItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  json.RawMessage `json:"quantity"`
	Unit      string          `json:"unit"`
}

type cartResponse struct {
	SessionID      string           `json:"session_id"`
	Lines          []model.BillLine `json:"lines"`
	Total          string           `json:"total"`
	Count          string           `json:"count"`
	PendingOrderID *uuid.UUID       `json:"pending_order_id,omitempty"`
}

func newCartResponse(cart *model.Cart) cartResponse {
	resp := cartResponse{
		SessionID: cart.SessionID,
		Lines:     cart.Lines,
		Total:     model.FormatAmount(cart.PresentedTotal()),
		Count:     cart.Count().String(),
	}
	if cart.PendingOrderID.Valid {
		id := cart.PendingOrderID.UUID
		resp.PendingOrderID = &id
	}
	return resp
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.services.Cart.GetCart(r.Context(), sessionOf(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decode(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	quantity, err := model.ParseQuantity(numberText(req.Quantity))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	unit, err := model.ParseUnit(req.Unit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	session := sessionOf(r)
	if _, err := h.services.Cart.AddToCart(r.Context(), session, req.ProductID, quantity, unit); err != nil {
		writeServiceError(w, err)
		return
	}

	cart, err := h.services.Cart.GetCart(r.Context(), session)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCartResponse(cart))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	lineID, err := uuidVar(r, "lineID")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	session := sessionOf(r)
	if err := h.services.Cart.RemoveFromCart(r.Context(), session, lineID); err != nil {
		writeServiceError(w, err)
		return
	}

	cart, err := h.services.Cart.GetCart(r.Context(), session)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.services.Cart.Checkout(r.Context(), sessionOf(r), optionalUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}
