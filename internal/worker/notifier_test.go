package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raditya/storefront/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func payload(t *testing.T, event domain.OrderPlacedEvent) []byte {
	t.Helper()
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return data
}

func TestNotifier_SendsConfirmation(t *testing.T) {
	var sent map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send" {
			t.Errorf("expected /send, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("decode email request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"sent"}`))
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL, server.Client(), testLogger())

	err := notifier.Handle(context.Background(), payload(t, domain.OrderPlacedEvent{
		OrderID:       "order-1",
		CustomerEmail: "budi@example.com",
		Total:         3112000,
		Items:         []domain.CartLine{{ProductID: "p-1", Quantity: 1}},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sent["to"] != "budi@example.com" {
		t.Errorf("unexpected recipient: %s", sent["to"])
	}
	if !strings.Contains(sent["body"], "Rp3.112.000") {
		t.Errorf("expected formatted total in body, got %q", sent["body"])
	}
}

func TestNotifier_SkipsWithoutEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("email service should not be called")
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL, server.Client(), testLogger())

	err := notifier.Handle(context.Background(), payload(t, domain.OrderPlacedEvent{OrderID: "order-1"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNotifier_FailureIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL, server.Client(), testLogger())

	err := notifier.Handle(context.Background(), payload(t, domain.OrderPlacedEvent{
		OrderID:       "order-1",
		CustomerEmail: "budi@example.com",
	}))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNotifier_BadPayload(t *testing.T) {
	notifier := NewNotifier("http://unused", http.DefaultClient, testLogger())

	if err := notifier.Handle(context.Background(), []byte("not json")); err == nil {
		t.Fatal("expected error, got nil")
	}
}
