package transport

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
)

type profileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Role     *string `json:"role"`
}

func (h *Handler) currentProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.services.Profiles.CurrentProfile(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	profile, err := h.services.Profiles.GetProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) updateOwnProfile(w http.ResponseWriter, r *http.Request) {
	h.writeProfileUpdate(w, r, currentUser(r))
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.writeProfileUpdate(w, r, id)
}

func (h *Handler) writeProfileUpdate(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	input := service.ProfileInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Location: req.Location,
	}
	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		input.Role = &role
	}

	profile, err := h.services.Profiles.UpdateProfile(r.Context(), currentUser(r), id, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.services.Profiles.DeleteProfile(r.Context(), currentUser(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
