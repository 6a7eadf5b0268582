package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/raditya/storefront/internal/catalog"
	"github.com/raditya/storefront/internal/domain"
	"github.com/raditya/storefront/internal/money"
	"github.com/raditya/storefront/internal/pricing"
)

// ProductFetcher is the slice of the catalog client the cart needs.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, id string) (domain.Product, error)
}

type Handler struct {
	store   *Store
	catalog ProductFetcher
	logger  *slog.Logger
}

func NewHandler(store *Store, catalog ProductFetcher, logger *slog.Logger) *Handler {
	return &Handler{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

type cartView struct {
	Items           []domain.CartLine `json:"items"`
	Totals          domain.Totals     `json:"totals"`
	SubtotalDisplay string            `json:"subtotal_display"`
	SavingsDisplay  string            `json:"savings_display"`
}

func (h *Handler) view(sessionID string) cartView {
	items := h.store.Items(sessionID)
	// Cart-summary totals carry no shipping or payment choice yet.
	totals := pricing.Compute(items, "", "")
	return cartView{
		Items:           items,
		Totals:          totals,
		SubtotalDisplay: money.Format(totals.Subtotal),
		SavingsDisplay:  money.Format(totals.Savings),
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.view(sessionID))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.FetchProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("failed to fetch product", "error", err, "product_id", req.ProductID)
		h.writeError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	line := h.store.AddItem(sessionID, product, req.Quantity)

	h.logger.Info("item added to cart", "session_id", sessionID, "product_id", product.ID, "quantity", line.Quantity)
	h.writeJSON(w, http.StatusOK, h.view(sessionID))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.store.SetQuantity(sessionID, productID, req.Quantity)
	h.writeJSON(w, http.StatusOK, h.view(sessionID))
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	h.store.RemoveItem(sessionID, productID)
	h.writeJSON(w, http.StatusOK, h.view(sessionID))
}

func (h *Handler) HandleToggleSelection(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	h.store.ToggleSelection(sessionID, productID)
	h.writeJSON(w, http.StatusOK, h.view(sessionID))
}

type selectAllRequest struct {
	Selected bool `json:"selected"`
}

func (h *Handler) HandleSelectAll(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	var req selectAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.store.SelectAll(sessionID, req.Selected)
	h.writeJSON(w, http.StatusOK, h.view(sessionID))
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	h.store.Clear(sessionID)
	h.writeJSON(w, http.StatusOK, h.view(sessionID))
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		h.writeError(w, http.StatusBadRequest, "missing session id")
		return "", false
	}
	return sessionID, true
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
