package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newTestServices loads the built-in menu into a fresh repository.
func newTestServices(t *testing.T) (*service.ProductService, *service.CartService, *repository.InMemoryProductRepository, *service.SessionStore) {
	t.Helper()

	repo := repository.NewInMemoryProductRepository()
	products := service.NewProductService(repo, catalog.NewStaticSource(catalog.SeedRecords()), catalog.Options{}, testLogger())
	_, err := products.Refresh(context.Background())
	require.NoError(t, err)

	sessions := service.NewSessionStore()
	return products, service.NewCartService(sessions, repo), repo, sessions
}
