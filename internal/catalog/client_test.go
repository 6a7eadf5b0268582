package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/raditya/storefront/internal/domain"
)

func TestClient_FetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("expected /products, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "2" {
			t.Errorf("expected limit=2, got %s", r.URL.Query().Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"sku":"p-1","name":"iPhone 15","price_idr":20000000,"list_price_idr":22000000,"stock_qty":5},
			{"sku":"p-2","name":"MacBook","price_idr":18000000,"stock_qty":3}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	products, err := client.FetchProducts(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "p-1" || products[0].Title != "iPhone 15" {
		t.Errorf("unexpected first product: %+v", products[0])
	}
	if products[0].OriginalPrice != 22000000 {
		t.Errorf("expected list price carried over, got %d", products[0].OriginalPrice)
	}
}

func TestClient_FetchProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())

	_, err := client.FetchProduct(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sku":"p-1","name":"iPhone 15","price_idr":20000000,"stock_qty":5}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), WithMaxRetries(3))

	product, err := client.FetchProduct(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != "p-1" {
		t.Errorf("unexpected product: %+v", product)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestClient_SurfacesFailureAfterRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), WithMaxRetries(1))

	_, err := client.FetchProducts(context.Background(), 0)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestConvert(t *testing.T) {
	t.Run("renames and defaults", func(t *testing.T) {
		p := Convert(rawProduct{SKU: "p-1", Name: "Case", PriceIDR: 99000})

		want := domain.Product{ID: "p-1", Title: "Case", Price: 99000}
		if p != want {
			t.Errorf("got %+v, want %+v", p, want)
		}
	})

	t.Run("drops list price below current price", func(t *testing.T) {
		p := Convert(rawProduct{SKU: "p-1", Name: "Case", PriceIDR: 99000, ListPriceIDR: 50000})

		if p.OriginalPrice != 0 {
			t.Errorf("expected list price dropped, got %d", p.OriginalPrice)
		}
	})

	t.Run("derives discount percent", func(t *testing.T) {
		p := Convert(rawProduct{SKU: "p-1", Name: "Case", PriceIDR: 75000, ListPriceIDR: 100000})

		if p.DiscountPercent != 25 {
			t.Errorf("expected 25%% discount, got %d", p.DiscountPercent)
		}
	})

	t.Run("clamps rating and stock", func(t *testing.T) {
		p := Convert(rawProduct{SKU: "p-1", Name: "Case", PriceIDR: 1000, Rating: 7.5, StockQty: -2})

		if p.Rating != 5 {
			t.Errorf("expected rating clamped to 5, got %f", p.Rating)
		}
		if p.Stock != 0 {
			t.Errorf("expected stock clamped to 0, got %d", p.Stock)
		}
	})
}
