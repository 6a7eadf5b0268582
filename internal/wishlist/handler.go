package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/raditya/storefront/internal/catalog"
	"github.com/raditya/storefront/internal/domain"
)

type ProductFetcher interface {
	FetchProduct(ctx context.Context, id string) (domain.Product, error)
}

// CartMover performs the atomic move of a saved product into the
// cart. The shopper service satisfies it; move failures for unsaved
// products surface as ErrNotSaved.
type CartMover interface {
	MoveToCart(sessionID, productID string) (domain.CartLine, error)
}

type Handler struct {
	store   *Store
	mover   CartMover
	catalog ProductFetcher
	logger  *slog.Logger
}

func NewHandler(store *Store, mover CartMover, catalog ProductFetcher, logger *slog.Logger) *Handler {
	return &Handler{
		store:   store,
		mover:   mover,
		catalog: catalog,
		logger:  logger,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"items": h.store.Items(sessionID)})
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
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

	item := h.store.AddItem(sessionID, product)

	h.logger.Info("item saved to wishlist", "session_id", sessionID, "product_id", product.ID)
	h.writeJSON(w, http.StatusOK, item)
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
	h.writeJSON(w, http.StatusOK, map[string]any{"items": h.store.Items(sessionID)})
}

// HandleMoveToCart moves a saved product into the cart in one step.
func (h *Handler) HandleMoveToCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	line, err := h.mover.MoveToCart(sessionID, productID)
	if err != nil {
		if errors.Is(err, ErrNotSaved) {
			h.writeError(w, http.StatusNotFound, "product not in wishlist")
			return
		}
		h.logger.Error("failed to move item to cart", "error", err, "product_id", productID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("item moved to cart", "session_id", sessionID, "product_id", productID)
	h.writeJSON(w, http.StatusOK, line)
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.session(w, r)
	if !ok {
		return
	}

	h.store.Clear(sessionID)
	h.writeJSON(w, http.StatusOK, map[string]any{"items": []domain.WishlistItem{}})
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
