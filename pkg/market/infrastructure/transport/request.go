package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

const (
	userHeader    = "X-User-ID"
	sessionHeader = "X-Session-ID"
)

var (
	errUnauthenticated = errors.New("authentication required")
	errBadRequest      = errors.New("malformed request")
)

type contextKey struct{}

// requireUser rejects requests that the gateway did not authenticate.
func requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(userHeader))
		if err != nil || id == uuid.Nil {
			writeServiceError(w, errUnauthenticated)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, id)))
	}
}

func currentUser(r *http.Request) uuid.UUID {
	if id, ok := r.Context().Value(contextKey{}).(uuid.UUID); ok {
		return id
	}
	return optionalUser(r)
}

// optionalUser is uuid.Nil for anonymous shoppers.
func optionalUser(r *http.Request) uuid.UUID {
	id, err := uuid.Parse(r.Header.Get(userHeader))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// sessionOf falls back to the user id so signed-in shoppers keep one cart across devices.
func sessionOf(r *http.Request) string {
	if session := r.Header.Get(sessionHeader); session != "" {
		return session
	}
	if user := optionalUser(r); user != uuid.Nil {
		return user.String()
	}
	return ""
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errBadRequest, err.Error())
	}
	return nil
}

func int64Var(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errBadRequest, "invalid %s", name)
	}
	return id, nil
}

func uuidVar(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, errors.Wrapf(errBadRequest, "invalid %s", name)
	}
	return id, nil
}

// numberText accepts "12.5" and 12.5 alike, so form fields can be forwarded verbatim.
func numberText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(raw)
	}
	return text
}

func parseAmount(raw json.RawMessage, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(numberText(raw)))
	if err != nil {
		return decimal.Zero, errors.Wrapf(errBadRequest, "invalid %s", field)
	}
	return amount, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithField("err", err).Error("write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func writeServiceError(w http.ResponseWriter, err error) {
	var shortage *model.InsufficientStockError
	if errors.As(err, &shortage) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":         shortage.Error(),
			"max_available": model.FormatAmount(shortage.Available),
		})
		return
	}

	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case isAny(err, errBadRequest, model.ErrInvalidQuantity, model.ErrInvalidUnit, model.ErrInvalidProduct,
		model.ErrProductNameRequired, model.ErrInvalidRating, model.ErrInvalidSession, model.ErrCartIsEmpty,
		model.ErrInvalidOrderStatus, model.ErrOrderHasNoItems, model.ErrInvalidRole, model.ErrInvalidDailyRate):
		return http.StatusBadRequest
	case isAny(err, errUnauthenticated):
		return http.StatusUnauthorized
	case isAny(err, model.ErrUnauthorized):
		return http.StatusForbidden
	case isAny(err, model.ErrProductNotFound, model.ErrOrderNotFound, model.ErrProfileNotFound,
		model.ErrVehicleNotFound, model.ErrCartLineNotFound):
		return http.StatusNotFound
	case isAny(err, model.ErrOptimisticLock, model.ErrPaymentInProgress, model.ErrOrderCannotBeModified,
		model.ErrVehicleNotAvailable, model.ErrInsufficientStock):
		return http.StatusConflict
	case isAny(err, model.ErrEncodingFailure):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
