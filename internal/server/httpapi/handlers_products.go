package httpapi

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pzubov/products-api/internal/common"
	"github.com/pzubov/products-api/internal/logging"
	"github.com/pzubov/products-api/internal/server/models"
	"github.com/pzubov/products-api/internal/server/services"
)

var productIDRegexp = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

type productService interface {
	List(ctx context.Context, params services.ListProductsParams) (*services.ListProductsResult, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, params services.CreateProductParams) (*models.Product, error)
	Update(ctx context.Context, id string, params services.UpdateProductParams) (*models.Product, error)
	Delete(ctx context.Context, id string) (*models.Product, error)
}

// ProductHandler serves the product catalog. Listing, fetching and creating
// are public; updates and deletes require an authenticated admin.
type ProductHandler struct {
	logger   logging.Logger
	products productService
	guard    *Guard
}

func NewProductHandler(l logging.Logger, p productService, g *Guard) *ProductHandler {
	return &ProductHandler{logger: l.With("module", "product_handler"), products: p, guard: g}
}

// queryInt parses an integer query parameter, falling back to def when absent
// and to 0 when malformed so validation rejects it downstream.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func queryString(r *http.Request, name string, def string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return def
}

func (h *ProductHandler) Index(w http.ResponseWriter, r *http.Request) {
	params := services.ListProductsParams{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 10),
		Sort:  queryString(r, "sort", "created_at"),
		Order: queryString(r, "order", "desc"),
	}

	res, err := h.products.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccessMeta(w, http.StatusOK, newProductPayloads(res.Items), listMeta{
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

func (h *ProductHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !productIDRegexp.MatchString(id) {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_PRODUCT_ID", "Invalid product ID")
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeErrorCode(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, newProductPayload(product))
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Quantity    *int     `json:"quantity"`
		Price       *float64 `json:"price"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.products.Create(r.Context(), services.CreateProductParams{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, newProductPayload(product))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Existence is checked before authorization, matching the update/delete
	// semantics of the rest of the API: an unknown id is 404 for everyone.
	if _, err := h.products.Get(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.guard.RequireRole(r, models.RoleAdmin); err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Quantity    *int     `json:"quantity"`
		Price       *float64 `json:"price"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.products.Update(r.Context(), id, services.UpdateProductParams{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, newProductPayload(product))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.products.Get(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.guard.RequireRole(r, models.RoleAdmin); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.products.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"id":      product.ID,
		"message": "Product deleted successfully",
	})
}
