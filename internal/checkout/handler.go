package checkout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/raditya/storefront/internal/domain"
	"github.com/raditya/storefront/internal/money"
)

type Handler struct {
	manager *Manager
	logger  *slog.Logger
}

func NewHandler(manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

type sessionView struct {
	Session
	CanProceed bool `json:"can_proceed"`
}

func viewOf(s Session) sessionView {
	return sessionView{Session: s, CanProceed: s.CanProceed()}
}

func (h *Handler) HandleBegin(w http.ResponseWriter, r *http.Request) {
	shopperID := r.Header.Get("X-Session-ID")
	if shopperID == "" {
		h.writeError(w, http.StatusBadRequest, "missing session id")
		return
	}

	s, err := h.manager.Begin(shopperID)
	if err != nil {
		if errors.Is(err, ErrNoSelection) {
			h.writeError(w, http.StatusConflict, "no selected cart items")
			return
		}
		h.logger.Error("failed to begin checkout", "error", err, "shopper_id", shopperID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("checkout started", "checkout_id", s.ID, "shopper_id", shopperID, "items", len(s.Items))
	h.writeJSON(w, http.StatusCreated, viewOf(s))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(r.PathValue("id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, viewOf(s))
}

func (h *Handler) HandleSetAddress(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.manager.SetAddress(r.PathValue("id"), addr)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, viewOf(s))
}

type setShippingRequest struct {
	Method domain.ShippingMethod `json:"method"`
}

func (h *Handler) HandleSetShipping(w http.ResponseWriter, r *http.Request) {
	var req setShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.manager.SetShippingMethod(r.PathValue("id"), req.Method)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, viewOf(s))
}

type setPaymentRequest struct {
	Method domain.PaymentMethod `json:"method"`
}

func (h *Handler) HandleSetPayment(w http.ResponseWriter, r *http.Request) {
	var req setPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.manager.SetPaymentMethod(r.PathValue("id"), req.Method)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, viewOf(s))
}

func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Next(r.PathValue("id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, viewOf(s))
}

func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Back(r.PathValue("id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, viewOf(s))
}

type totalsView struct {
	domain.Totals
	TotalDisplay    string `json:"total_display"`
	SubtotalDisplay string `json:"subtotal_display"`
}

func (h *Handler) HandleTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.manager.Totals(r.PathValue("id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, totalsView{
		Totals:          totals,
		TotalDisplay:    money.Format(totals.Total),
		SubtotalDisplay: money.Format(totals.Subtotal),
	})
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	order, err := h.manager.Submit(r.Context(), id)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.manager.Cancel(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, "checkout session not found")
	case errors.Is(err, ErrStepIncomplete), errors.Is(err, ErrSubmitRequired), errors.Is(err, ErrAlreadySubmitted):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrSubmitInFlight):
		h.writeError(w, http.StatusConflict, "submission already in flight")
	case errors.Is(err, ErrUnknownShippingMethod), errors.Is(err, ErrUnknownPaymentMethod):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("checkout request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
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
