package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
)

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Quantity    json.RawMessage `json:"quantity"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Alt         string          `json:"alt"`
	Rating      *float64        `json:"rating"`
	ReviewCount int             `json:"review_count"`
	Version     int             `json:"version"`
}

func (req productRequest) input() (service.ProductInput, error) {
	price, err := parseAmount(req.Price, "price")
	if err != nil {
		return service.ProductInput{}, err
	}
	quantity, err := parseAmount(req.Quantity, "quantity")
	if err != nil {
		return service.ProductInput{}, err
	}
	return service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Quantity:    quantity,
		Category:    req.Category,
		Image:       req.Image,
		Alt:         req.Alt,
		Rating:      req.Rating,
		ReviewCount: req.ReviewCount,
		Version:     req.Version,
	}, nil
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := model.ProductFilter{
		Query:             query.Get("q"),
		Category:          query.Get("category"),
		IncludeOutOfStock: query.Get("include_out_of_stock") == "true",
		Sort:              model.ParseSortOrder(query.Get("sort")),
	}

	var err error
	if filter.MinPrice, err = priceBound(query.Get("min"), "min"); err != nil {
		writeServiceError(w, err)
		return
	}
	if filter.MaxPrice, err = priceBound(query.Get("max"), "max"); err != nil {
		writeServiceError(w, err)
		return
	}

	products, err := h.services.Catalog.Search(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.services.Catalog.Categories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := int64Var(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	product, err := h.services.Catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	input, err := req.input()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	farmer := uuid.NullUUID{UUID: currentUser(r), Valid: true}
	product, err := h.services.Catalog.CreateProduct(r.Context(), farmer, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := int64Var(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req productRequest
	if err := decode(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	input, err := req.input()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	product, err := h.services.Catalog.UpdateProduct(r.Context(), currentUser(r), id, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := int64Var(r, "id")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.services.Catalog.DeleteProduct(r.Context(), currentUser(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func priceBound(text, name string) (decimal.NullDecimal, error) {
	if text == "" {
		return decimal.NullDecimal{}, nil
	}
	bound, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: invalid %s price", errBadRequest, name)
	}
	return decimal.NullDecimal{Decimal: bound, Valid: true}, nil
}
