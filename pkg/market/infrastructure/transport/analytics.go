package transport

import "net/http"

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		data any
		err  error
	)
	switch r.URL.Query().Get("type") {
	case "dashboard":
		data, err = h.services.Analytics.Dashboard(ctx)
	case "sales":
		data, err = h.services.Analytics.Sales(ctx)
	case "products":
		data, err = h.services.Analytics.ProductStats(ctx)
	default:
		writeError(w, http.StatusBadRequest, "invalid analytics type")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
