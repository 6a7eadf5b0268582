package checkout

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raditya/storefront/internal/cart"
	"github.com/raditya/storefront/internal/domain"
)

func newHandlerFixture() (*Handler, *cart.Store) {
	carts := cart.NewStore()
	carts.AddItem("sess-1", domain.Product{ID: "SKU-1", Title: "Laptop", Price: 2499000, Stock: 5}, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(NewManager(carts, nil, logger), logger), carts
}

func beginSession(t *testing.T, handler *Handler) sessionView {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("X-Session-ID", "sess-1")
	rec := httptest.NewRecorder()

	handler.HandleBegin(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var view sessionView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	return view
}

func TestHandler_HandleBegin(t *testing.T) {
	t.Run("starts a session at the address step", func(t *testing.T) {
		handler, _ := newHandlerFixture()

		view := beginSession(t, handler)

		if view.ID == "" {
			t.Error("expected a session id")
		}
		if view.Step != StepAddress {
			t.Errorf("expected step %s, got %s", StepAddress, view.Step)
		}
		if view.CanProceed {
			t.Error("expected the address guard to block an empty address")
		}
		if len(view.Items) != 1 {
			t.Errorf("expected 1 snapshotted line, got %d", len(view.Items))
		}
	})

	t.Run("returns 409 when nothing is selected", func(t *testing.T) {
		handler, carts := newHandlerFixture()
		carts.SelectAll("sess-1", false)

		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.Header.Set("X-Session-ID", "sess-1")
		rec := httptest.NewRecorder()

		handler.HandleBegin(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected status 409, got %d", rec.Code)
		}
	})

	t.Run("returns 400 without a session header", func(t *testing.T) {
		handler, _ := newHandlerFixture()

		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		rec := httptest.NewRecorder()

		handler.HandleBegin(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleNext(t *testing.T) {
	t.Run("blocks with 409 while the address is incomplete", func(t *testing.T) {
		handler, _ := newHandlerFixture()
		view := beginSession(t, handler)

		req := httptest.NewRequest(http.MethodPost, "/checkout/"+view.ID+"/next", nil)
		req.SetPathValue("id", view.ID)
		rec := httptest.NewRecorder()

		handler.HandleNext(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected status 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("advances once the address is complete", func(t *testing.T) {
		handler, _ := newHandlerFixture()
		view := beginSession(t, handler)

		addrBody := `{"name":"Budi","phone":"0812","line":"Jl. Sudirman 10","city":"Jakarta","province":"DKI Jakarta"}`
		addrReq := httptest.NewRequest(http.MethodPut, "/checkout/"+view.ID+"/address", strings.NewReader(addrBody))
		addrReq.SetPathValue("id", view.ID)
		handler.HandleSetAddress(httptest.NewRecorder(), addrReq)

		req := httptest.NewRequest(http.MethodPost, "/checkout/"+view.ID+"/next", nil)
		req.SetPathValue("id", view.ID)
		rec := httptest.NewRecorder()

		handler.HandleNext(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var next sessionView
		if err := json.NewDecoder(rec.Body).Decode(&next); err != nil {
			t.Fatalf("failed to decode session: %v", err)
		}
		if next.Step != StepShipping {
			t.Errorf("expected step %s, got %s", StepShipping, next.Step)
		}
	})

	t.Run("returns 404 for an unknown session", func(t *testing.T) {
		handler, _ := newHandlerFixture()

		req := httptest.NewRequest(http.MethodPost, "/checkout/nope/next", nil)
		req.SetPathValue("id", "nope")
		rec := httptest.NewRecorder()

		handler.HandleNext(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleSetShipping(t *testing.T) {
	handler, _ := newHandlerFixture()
	view := beginSession(t, handler)

	t.Run("rejects an unknown method with 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/checkout/"+view.ID+"/shipping", strings.NewReader(`{"method":"teleport"}`))
		req.SetPathValue("id", view.ID)
		rec := httptest.NewRecorder()

		handler.HandleSetShipping(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("accepts a known method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/checkout/"+view.ID+"/shipping", strings.NewReader(`{"method":"express"}`))
		req.SetPathValue("id", view.ID)
		rec := httptest.NewRecorder()

		handler.HandleSetShipping(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var next sessionView
		if err := json.NewDecoder(rec.Body).Decode(&next); err != nil {
			t.Fatalf("failed to decode session: %v", err)
		}
		if next.ShippingMethod != domain.ShippingExpress {
			t.Errorf("expected shipping method express, got %s", next.ShippingMethod)
		}
	})
}

func TestHandler_HandleTotals(t *testing.T) {
	handler, _ := newHandlerFixture()
	view := beginSession(t, handler)

	shipReq := httptest.NewRequest(http.MethodPut, "/checkout/"+view.ID+"/shipping", strings.NewReader(`{"method":"regular"}`))
	shipReq.SetPathValue("id", view.ID)
	handler.HandleSetShipping(httptest.NewRecorder(), shipReq)

	payReq := httptest.NewRequest(http.MethodPut, "/checkout/"+view.ID+"/payment", strings.NewReader(`{"method":"cod"}`))
	payReq.SetPathValue("id", view.ID)
	handler.HandleSetPayment(httptest.NewRecorder(), payReq)

	req := httptest.NewRequest(http.MethodGet, "/checkout/"+view.ID+"/totals", nil)
	req.SetPathValue("id", view.ID)
	rec := httptest.NewRecorder()

	handler.HandleTotals(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var totals totalsView
	if err := json.NewDecoder(rec.Body).Decode(&totals); err != nil {
		t.Fatalf("failed to decode totals: %v", err)
	}
	// 2499000 + 15000 regular + 5000 COD fee.
	if totals.Total != 2519000 {
		t.Errorf("expected total 2519000, got %d", totals.Total)
	}
	if totals.TotalDisplay != "Rp2.519.000" {
		t.Errorf("unexpected total display: %s", totals.TotalDisplay)
	}
}

func TestHandler_HandleSubmit(t *testing.T) {
	handler, carts := newHandlerFixture()
	view := beginSession(t, handler)

	addrBody := `{"name":"Budi","phone":"0812","line":"Jl. Sudirman 10","city":"Jakarta","province":"DKI Jakarta"}`
	addrReq := httptest.NewRequest(http.MethodPut, "/checkout/"+view.ID+"/address", strings.NewReader(addrBody))
	addrReq.SetPathValue("id", view.ID)
	handler.HandleSetAddress(httptest.NewRecorder(), addrReq)

	nextReq := httptest.NewRequest(http.MethodPost, "/checkout/"+view.ID+"/next", nil)
	nextReq.SetPathValue("id", view.ID)
	handler.HandleNext(httptest.NewRecorder(), nextReq)

	shipReq := httptest.NewRequest(http.MethodPut, "/checkout/"+view.ID+"/shipping", strings.NewReader(`{"method":"regular"}`))
	shipReq.SetPathValue("id", view.ID)
	handler.HandleSetShipping(httptest.NewRecorder(), shipReq)

	nextReq = httptest.NewRequest(http.MethodPost, "/checkout/"+view.ID+"/next", nil)
	nextReq.SetPathValue("id", view.ID)
	handler.HandleNext(httptest.NewRecorder(), nextReq)

	payReq := httptest.NewRequest(http.MethodPut, "/checkout/"+view.ID+"/payment", strings.NewReader(`{"method":"ewallet_gopay"}`))
	payReq.SetPathValue("id", view.ID)
	handler.HandleSetPayment(httptest.NewRecorder(), payReq)

	req := httptest.NewRequest(http.MethodPost, "/checkout/"+view.ID+"/submit", nil)
	req.SetPathValue("id", view.ID)
	rec := httptest.NewRecorder()

	handler.HandleSubmit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var order domain.Order
	if err := json.NewDecoder(rec.Body).Decode(&order); err != nil {
		t.Fatalf("failed to decode order: %v", err)
	}
	if order.ID == "" {
		t.Error("expected an order id")
	}
	if order.Totals.Total != 2516500 {
		t.Errorf("expected total 2516500, got %d", order.Totals.Total)
	}
	if len(carts.Items("sess-1")) != 0 {
		t.Error("expected the purchased line removed from the cart")
	}

	// The session is gone after a successful submit.
	getReq := httptest.NewRequest(http.MethodGet, "/checkout/"+view.ID, nil)
	getReq.SetPathValue("id", view.ID)
	getRec := httptest.NewRecorder()
	handler.HandleGet(getRec, getReq)
	if getRec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after submit, got %d", getRec.Code)
	}
}

func TestHandler_HandleCancel(t *testing.T) {
	handler, carts := newHandlerFixture()
	view := beginSession(t, handler)

	req := httptest.NewRequest(http.MethodDelete, "/checkout/"+view.ID, nil)
	req.SetPathValue("id", view.ID)
	rec := httptest.NewRecorder()

	handler.HandleCancel(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if len(carts.Items("sess-1")) != 1 {
		t.Error("expected the cart untouched after cancel")
	}
}
