package transport

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type paymentResponse struct {
	Request *model.PaymentRequest `json:"request"`
	URI     string                `json:"uri"`
	Amount  string                `json:"amount"`
}

func (h *Handler) getPaymentRequest(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuidVar(r, "orderID")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	request, err := h.services.Payments.PaymentRequest(r.Context(), optionalUser(r), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentResponse{
		Request: request,
		URI:     request.URI(),
		Amount:  model.FormatAmount(request.Amount),
	})
}

func (h *Handler) getPaymentCode(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuidVar(r, "orderID")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	image, err := h.services.Payments.PaymentCode(r.Context(), optionalUser(r), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(image); err != nil {
		log.WithField("err", err).Error("write payment code")
	}
}

func (h *Handler) completePayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuidVar(r, "orderID")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	order, err := h.services.Cart.CompletePayment(r.Context(), sessionOf(r), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuidVar(r, "orderID")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	order, err := h.services.Cart.CancelPayment(r.Context(), sessionOf(r), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
