package listing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/raditya/storefront/internal/catalog"
	"github.com/raditya/storefront/internal/domain"
)

const defaultFetchLimit = 100

type ProductSource interface {
	FetchProducts(ctx context.Context, limit int) ([]domain.Product, error)
	FetchProduct(ctx context.Context, id string) (domain.Product, error)
}

type Handler struct {
	catalog ProductSource
	logger  *slog.Logger
}

func NewHandler(catalog ProductSource, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// HandleList serves the browse/search page: fetch, filter, sort.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultFetchLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	filter := Filter{
		Query:      q.Get("query"),
		Categories: q["category"],
		Brands:     q["brand"],
	}
	var err error
	if filter.MinPrice, err = parsePrice(q.Get("min_price")); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid min_price")
		return
	}
	if filter.MaxPrice, err = parsePrice(q.Get("max_price")); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid max_price")
		return
	}
	if raw := q.Get("min_rating"); raw != "" {
		if filter.MinRating, err = strconv.ParseFloat(raw, 64); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid min_rating")
			return
		}
	}

	products, err := h.catalog.FetchProducts(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to fetch products", "error", err)
		h.writeError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	result := Sort(Apply(products, filter), SortKey(q.Get("sort")))

	h.logger.Info("products listed", "fetched", len(products), "matched", len(result))
	h.writeJSON(w, http.StatusOK, map[string]any{"products": result})
}

func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	product, err := h.catalog.FetchProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("failed to fetch product", "error", err, "id", id)
		h.writeError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

func parsePrice(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
