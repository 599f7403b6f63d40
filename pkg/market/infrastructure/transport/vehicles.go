package transport

import (
	"encoding/json"
	"net/http"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
)

type vehicleRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DailyRate   json.RawMessage `json:"daily_rate"`
	Location    string          `json:"location"`
	Type        string          `json:"type"`
	Image       string          `json:"image"`
}

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.services.Vehicles.ListVehicles(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *Handler) listVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decode(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	rate, err := parseAmount(req.DailyRate, "daily_rate")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	vehicle, err := h.services.Vehicles.ListVehicle(r.Context(), currentUser(r), service.VehicleInput{
		Name:        req.Name,
		Description: req.Description,
		DailyRate:   rate,
		Location:    req.Location,
		Type:        req.Type,
		Image:       req.Image,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *Handler) bookVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := int64Var(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	vehicle, err := h.services.Vehicles.BookVehicle(r.Context(), currentUser(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}
