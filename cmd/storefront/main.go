package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/raditya/storefront/internal/cart"
	"github.com/raditya/storefront/internal/catalog"
	"github.com/raditya/storefront/internal/checkout"
	"github.com/raditya/storefront/internal/listing"
	"github.com/raditya/storefront/internal/messaging"
	"github.com/raditya/storefront/internal/shopper"
	"github.com/raditya/storefront/internal/telemetry"
	"github.com/raditya/storefront/internal/wishlist"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	catalogURL := os.Getenv("CATALOG_URL")
	if catalogURL == "" {
		logger.Error("CATALOG_URL environment variable is required")
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "storefront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("storefront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := runtime.Start(); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
		os.Exit(1)
	}

	var publisher checkout.Publisher
	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers != "" {
		producer := messaging.NewProducer(strings.Split(kafkaBrokers, ","), messaging.TopicOrderPlaced)
		defer func() { _ = producer.Close() }()
		publisher = producer
	}

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	catalogClient := catalog.NewClient(catalogURL, httpClient)
	carts := cart.NewStore()
	wishlists := wishlist.NewStore()
	shopperSvc := shopper.NewService(carts, wishlists)
	checkoutManager := checkout.NewManager(carts, publisher, logger)

	listingHandler := listing.NewHandler(catalogClient, logger)
	cartHandler := cart.NewHandler(carts, catalogClient, logger)
	wishlistHandler := wishlist.NewHandler(wishlists, shopperSvc, catalogClient, logger)
	checkoutHandler := checkout.NewHandler(checkoutManager, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", telemetry.WithHTTPRoute(listingHandler.HandleList))
	mux.HandleFunc("GET /products/{id}", telemetry.WithHTTPRoute(listingHandler.HandleGetProduct))

	mux.HandleFunc("GET /cart", telemetry.WithHTTPRoute(cartHandler.HandleGet))
	mux.HandleFunc("POST /cart/items", telemetry.WithHTTPRoute(cartHandler.HandleAddItem))
	mux.HandleFunc("PUT /cart/items/{productId}", telemetry.WithHTTPRoute(cartHandler.HandleSetQuantity))
	mux.HandleFunc("DELETE /cart/items/{productId}", telemetry.WithHTTPRoute(cartHandler.HandleRemoveItem))
	mux.HandleFunc("POST /cart/items/{productId}/toggle", telemetry.WithHTTPRoute(cartHandler.HandleToggleSelection))
	mux.HandleFunc("POST /cart/select-all", telemetry.WithHTTPRoute(cartHandler.HandleSelectAll))
	mux.HandleFunc("DELETE /cart", telemetry.WithHTTPRoute(cartHandler.HandleClear))

	mux.HandleFunc("GET /wishlist", telemetry.WithHTTPRoute(wishlistHandler.HandleGet))
	mux.HandleFunc("POST /wishlist/items", telemetry.WithHTTPRoute(wishlistHandler.HandleAddItem))
	mux.HandleFunc("DELETE /wishlist/items/{productId}", telemetry.WithHTTPRoute(wishlistHandler.HandleRemoveItem))
	mux.HandleFunc("POST /wishlist/items/{productId}/move-to-cart", telemetry.WithHTTPRoute(wishlistHandler.HandleMoveToCart))
	mux.HandleFunc("DELETE /wishlist", telemetry.WithHTTPRoute(wishlistHandler.HandleClear))

	mux.HandleFunc("POST /checkout", telemetry.WithHTTPRoute(checkoutHandler.HandleBegin))
	mux.HandleFunc("GET /checkout/{id}", telemetry.WithHTTPRoute(checkoutHandler.HandleGet))
	mux.HandleFunc("PUT /checkout/{id}/address", telemetry.WithHTTPRoute(checkoutHandler.HandleSetAddress))
	mux.HandleFunc("PUT /checkout/{id}/shipping", telemetry.WithHTTPRoute(checkoutHandler.HandleSetShipping))
	mux.HandleFunc("PUT /checkout/{id}/payment", telemetry.WithHTTPRoute(checkoutHandler.HandleSetPayment))
	mux.HandleFunc("POST /checkout/{id}/next", telemetry.WithHTTPRoute(checkoutHandler.HandleNext))
	mux.HandleFunc("POST /checkout/{id}/back", telemetry.WithHTTPRoute(checkoutHandler.HandleBack))
	mux.HandleFunc("GET /checkout/{id}/totals", telemetry.WithHTTPRoute(checkoutHandler.HandleTotals))
	mux.HandleFunc("POST /checkout/{id}/submit", telemetry.WithHTTPRoute(checkoutHandler.HandleSubmit))
	mux.HandleFunc("DELETE /checkout/{id}", telemetry.WithHTTPRoute(checkoutHandler.HandleCancel))

	mux.Handle("GET /metrics", metricsHandler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "storefront",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting storefront service", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
