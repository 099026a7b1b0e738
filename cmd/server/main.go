package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/tracing"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"catalog_urls", cfg.Catalog.URLs,
	)

	shutdownTracing, err := tracing.Setup(cfg.Tracing.Enabled, cfg.Tracing.ServiceName, os.Stderr)
	if err != nil {
		log.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize repositories and services
	productRepo := repository.NewInMemoryProductRepository()
	sessions := service.NewSessionStore()

	productService := service.NewProductService(productRepo, newCatalogSource(cfg.Catalog, log), catalog.Options{
		DefaultStock: cfg.Catalog.DefaultStock,
	}, log)
	cartService := service.NewCartService(sessions, productRepo)

	// An unreachable catalog is not fatal: the store starts empty and the
	// next refresh tries again.
	if _, err := productService.Refresh(ctx); err != nil {
		log.Error("initial catalog load failed", "error", err)
	}

	if cfg.Catalog.RefreshInterval > 0 {
		go every(ctx, cfg.Catalog.RefreshInterval, func() {
			if _, err := productService.Refresh(ctx); err != nil {
				log.Error("scheduled catalog refresh failed", "error", err)
			}
		})
	}
	go every(ctx, max(cfg.Session.TTL/4, time.Second), func() {
		if n := sessions.Sweep(cfg.Session.TTL); n > 0 {
			log.Info("expired cart sessions", "count", n)
		}
	})

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log, productRepo, sessions)
	productHandler := handlers.NewProductHandler(productService, log)
	cartHandler := handlers.NewCartHandler(cartService, log)

	// Create router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: cfg.CORS.AllowCredentials(),
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/category", productHandler.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session))

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{itemId}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{itemId}", cartHandler.RemoveItem)
		})

		r.With(middleware.APIKeyAuth(cfg.Auth)).Post("/catalog/refresh", productHandler.RefreshCatalog)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("failed to flush traces", "error", err)
	}

	log.Info("server stopped gracefully")
}

func newCatalogSource(cfg config.CatalogConfig, log *slog.Logger) catalog.Source {
	if cfg.Static() {
		return catalog.NewStaticSource(catalog.SeedRecords())
	}
	return catalog.NewHTTPSource(cfg.URLs,
		catalog.WithTimeout(cfg.FetchTimeout),
		catalog.WithMaxBytes(cfg.MaxBytes),
		catalog.WithLogger(log),
	)
}

// every runs fn on each tick of interval until ctx is done.
func every(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
