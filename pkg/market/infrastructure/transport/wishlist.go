package transport

import (
	"net/http"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

type wishlistItemRequest struct {
	ProductID int64 `json:"product_id"`
}

type wishlistResponse struct {
	SessionID string          `json:"session_id"`
	Items     []model.Product `json:"items"`
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	h.writeWishlist(w, r, http.StatusOK)
}

func (h *Handler) addWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req wishlistItemRequest
	if err := decode(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.services.Wishlist.Add(r.Context(), sessionOf(r), req.ProductID); err != nil {
		writeServiceError(w, err)
		return
	}
	h.writeWishlist(w, r, http.StatusCreated)
}

func (h *Handler) wishlistContains(w http.ResponseWriter, r *http.Request) {
	productID, err := int64Var(r, "productID")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	saved, err := h.services.Wishlist.Contains(r.Context(), sessionOf(r), productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product_id": productID, "in_wishlist": saved})
}

func (h *Handler) removeWishlistItem(w http.ResponseWriter, r *http.Request) {
	productID, err := int64Var(r, "productID")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.services.Wishlist.Remove(r.Context(), sessionOf(r), productID); err != nil {
		writeServiceError(w, err)
		return
	}
	h.writeWishlist(w, r, http.StatusOK)
}

func (h *Handler) clearWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Wishlist.Clear(r.Context(), sessionOf(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeWishlist(w http.ResponseWriter, r *http.Request, status int) {
	session := sessionOf(r)
	items, err := h.services.Wishlist.Items(r.Context(), session)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, status, wishlistResponse{SessionID: session, Items: items})
}
