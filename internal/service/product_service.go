package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

const tracerName = "github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"

// CatalogStore is a product repository whose contents can be swapped wholesale.
type CatalogStore interface {
	repository.ProductRepository
	Replace(products []catalog.Product)
}

// RefreshResult reports what a catalog refresh did.
type RefreshResult struct {
	Loaded   int `json:"loaded"`
	Rejected int `json:"rejected"`
}

// ProductService handles business logic for products
type ProductService struct {
	repo   CatalogStore
	source catalog.Source
	opts   catalog.Options
	logger *slog.Logger
	tracer trace.Tracer
}

// NewProductService creates a new product service
func NewProductService(repo CatalogStore, source catalog.Source, opts catalog.Options, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		source: source,
		opts:   opts,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// ListProducts returns all products, or only those in category when set
func (s *ProductService) ListProducts(ctx context.Context, category string) ([]catalog.Product, error) {
	if category = strings.TrimSpace(category); category != "" {
		return s.repo.ListByCategory(ctx, category)
	}
	return s.repo.GetAll(ctx)
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns the distinct product categories
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// Refresh pulls the catalog from the source, drops invalid records and
// replaces the stored products. On a fetch error the current catalog stays.
func (s *ProductService) Refresh(ctx context.Context) (RefreshResult, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.refresh")
	defer span.End()

	records, err := s.source.FetchCatalog(ctx)
	if err != nil {
		span.RecordError(err)
		return RefreshResult{}, errors.Wrap(err, "fetch catalog")
	}

	res := catalog.Ingest(records, s.opts)
	for _, r := range res.Rejected {
		s.logger.Warn("dropping invalid catalog record",
			"index", r.Index,
			"product_id", r.ID,
			"error", r.Err,
		)
	}

	s.repo.Replace(res.Products)

	span.SetAttributes(
		attribute.Int("catalog.loaded", len(res.Products)),
		attribute.Int("catalog.rejected", len(res.Rejected)),
	)
	s.logger.Info("catalog refreshed", "loaded", len(res.Products), "rejected", len(res.Rejected))

	return RefreshResult{Loaded: len(res.Products), Rejected: len(res.Rejected)}, nil
}
