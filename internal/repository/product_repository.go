package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]catalog.Product, error)
	GetByID(ctx context.Context, id string) (*catalog.Product, error)
	ListByCategory(ctx context.Context, category string) ([]catalog.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// InMemoryProductRepository implements ProductRepository with in-memory storage.
// Products keep the order the catalog delivered them in.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []catalog.Product
	byID     map[string]int
}

// NewInMemoryProductRepository creates a repository holding products
func NewInMemoryProductRepository(products ...catalog.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{}
	r.Replace(products)
	return r
}

// Replace swaps the whole catalog in one step
func (r *InMemoryProductRepository) Replace(products []catalog.Product) {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append([]catalog.Product(nil), products...)
	r.byID = byID
}

// Len returns the number of products held
func (r *InMemoryProductRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

// GetAll returns all products
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]catalog.Product(nil), r.products...), nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.byID[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}

// ListByCategory returns products whose category matches, ignoring case
func (r *InMemoryProductRepository) ListByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]catalog.Product, 0)
	for _, p := range r.products {
		if strings.EqualFold(p.Category, category) {
			products = append(products, p)
		}
	}
	return products, nil
}

// Categories returns distinct categories in first-seen order
func (r *InMemoryProductRepository) Categories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range r.products {
		if p.Category == "" {
			continue
		}
		key := strings.ToLower(p.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories, nil
}
