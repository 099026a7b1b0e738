package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

type failingSource struct{ err error }

func (f failingSource) FetchCatalog(context.Context) ([]catalog.Record, error) {
	return nil, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSeededProductService(t *testing.T) (*ProductService, *repository.InMemoryProductRepository) {
	t.Helper()
	repo := repository.NewInMemoryProductRepository()
	svc := NewProductService(repo, catalog.NewStaticSource(catalog.SeedRecords()), catalog.Options{}, discardLogger())

	res, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, res.Loaded)
	return svc, repo
}

func TestProductService_ListProducts(t *testing.T) {
	svc, _ := newSeededProductService(t)
	ctx := context.Background()

	all, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 10)

	waffles, err := svc.ListProducts(ctx, " Waffle ")
	require.NoError(t, err)
	assert.Len(t, waffles, 3)

	p, err := svc.GetProduct(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Pistachio Baklava", p.Title)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, "Baklava")
}

func TestProductService_RefreshDropsInvalid(t *testing.T) {
	records := catalog.SeedRecords()
	records[2].Image = "https://example.com/menu.pdf"

	repo := repository.NewInMemoryProductRepository()
	svc := NewProductService(repo, catalog.NewStaticSource(records), catalog.Options{}, discardLogger())

	res, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RefreshResult{Loaded: 9, Rejected: 1}, res)

	_, err = svc.GetProduct(context.Background(), "3")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductService_RefreshFailureKeepsCatalog(t *testing.T) {
	_, repo := newSeededProductService(t)
	boom := errors.New("catalog down")

	svc := NewProductService(repo, failingSource{err: boom}, catalog.Options{}, discardLogger())
	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 10, repo.Len())
}
