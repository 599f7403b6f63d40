package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
)

type Services struct {
	Cart      service.CartService
	Catalog   service.CatalogService
	Orders    service.OrderService
	Payments  service.PaymentService
	Profiles  service.ProfileService
	Analytics service.AnalyticsService
	Vehicles  service.VehicleService
	Wishlist  service.WishlistService
}

type Handler struct {
	services Services
}

func Router(services Services) http.Handler {
	h := &Handler{services: services}

	r := mux.NewRouter()
	r.HandleFunc("/health", health).Methods(http.MethodGet)

	s := r.PathPrefix("/api/v1").Subrouter()

	s.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/products/categories", h.listCategories).Methods(http.MethodGet)
	s.HandleFunc("/products/{id:[0-9]+}", h.getProduct).Methods(http.MethodGet)
	s.HandleFunc("/products", requireUser(h.createProduct)).Methods(http.MethodPost)
	s.HandleFunc("/products/{id:[0-9]+}", requireUser(h.updateProduct)).Methods(http.MethodPut)
	s.HandleFunc("/products/{id:[0-9]+}", requireUser(h.deleteProduct)).Methods(http.MethodDelete)

	s.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	s.HandleFunc("/cart/items", h.addCartItem).Methods(http.MethodPost)
	s.HandleFunc("/cart/items/{lineID}", h.removeCartItem).Methods(http.MethodDelete)
	s.HandleFunc("/cart/checkout", h.checkout).Methods(http.MethodPost)

	s.HandleFunc("/wishlist", h.getWishlist).Methods(http.MethodGet)
	s.HandleFunc("/wishlist", h.clearWishlist).Methods(http.MethodDelete)
	s.HandleFunc("/wishlist/items", h.addWishlistItem).Methods(http.MethodPost)
	s.HandleFunc("/wishlist/items/{productID:[0-9]+}", h.wishlistContains).Methods(http.MethodGet)
	s.HandleFunc("/wishlist/items/{productID:[0-9]+}", h.removeWishlistItem).Methods(http.MethodDelete)

	s.HandleFunc("/payments/{orderID}", h.getPaymentRequest).Methods(http.MethodGet)
	s.HandleFunc("/payments/{orderID}/qr", h.getPaymentCode).Methods(http.MethodGet)
	s.HandleFunc("/payments/{orderID}/complete", h.completePayment).Methods(http.MethodPost)
	s.HandleFunc("/payments/{orderID}/cancel", h.cancelPayment).Methods(http.MethodPost)

	s.HandleFunc("/orders", requireUser(h.listOrders)).Methods(http.MethodGet)
	s.HandleFunc("/orders", requireUser(h.createOrder)).Methods(http.MethodPost)
	s.HandleFunc("/orders/{id}", requireUser(h.getOrder)).Methods(http.MethodGet)
	s.HandleFunc("/orders/{id}", requireUser(h.updateOrder)).Methods(http.MethodPut)

	s.HandleFunc("/profiles/me", requireUser(h.currentProfile)).Methods(http.MethodGet)
	s.HandleFunc("/profiles", requireUser(h.updateOwnProfile)).Methods(http.MethodPut)
	s.HandleFunc("/profiles/{id}", requireUser(h.getProfile)).Methods(http.MethodGet)
	s.HandleFunc("/profiles/{id}", requireUser(h.updateProfile)).Methods(http.MethodPut)
	s.HandleFunc("/profiles/{id}", requireUser(h.deleteProfile)).Methods(http.MethodDelete)

	s.HandleFunc("/analytics", requireUser(h.analytics)).Methods(http.MethodGet)

	s.HandleFunc("/vehicles", h.listVehicles).Methods(http.MethodGet)
	s.HandleFunc("/vehicles", requireUser(h.listVehicle)).Methods(http.MethodPost)
	s.HandleFunc("/vehicles/{id:[0-9]+}/book", requireUser(h.bookVehicle)).Methods(http.MethodPost)

	return otelhttp.NewHandler(logMiddleware(r), "greenlink")
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
			"session":    r.Header.Get(sessionHeader),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
