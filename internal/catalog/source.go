package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Source delivers raw catalog records. Implementations may block on I/O and
// should honour ctx.
type Source interface {
	FetchCatalog(ctx context.Context) ([]Record, error)
}

// StaticSource serves a fixed set of records.
type StaticSource struct {
	records []Record
}

// NewStaticSource wraps records; the slice is copied.
func NewStaticSource(records []Record) *StaticSource {
	return &StaticSource{records: append([]Record(nil), records...)}
}

// FetchCatalog returns a copy of the configured records.
func (s *StaticSource) FetchCatalog(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Record(nil), s.records...), nil
}

const seedImageBase = "https://orderfoodonline.deno.dev/public/images/"

// SeedRecords is the built-in menu used when no remote catalog is configured.
func SeedRecords() []Record {
	item := func(id, title, price, category, image string, stock int64) Record {
		p := decimal.RequireFromString(price)
		s := decimal.NewFromInt(stock)
		return Record{
			ID:       ID(id),
			Title:    title,
			Price:    &p,
			Stock:    &s,
			Image:    seedImageBase + image,
			Category: category,
		}
	}

	return []Record{
		item("1", "Chicken Waffle", "12.99", "Waffle", "image-waffle-thumbnail.jpg", 20),
		item("2", "Belgian Waffle", "10.99", "Waffle", "image-waffle-thumbnail.jpg", 15),
		item("3", "Chocolate Waffle", "11.99", "Waffle", "image-waffle-thumbnail.jpg", 12),
		item("4", "Vanilla Bean Crème Brûlée", "7.00", "Crème Brûlée", "image-creme-brulee-thumbnail.jpg", 10),
		item("5", "Macaron Mix of Five", "8.00", "Macaron", "image-macaron-thumbnail.jpg", 25),
		item("6", "Classic Tiramisu", "5.50", "Tiramisu", "image-tiramisu-thumbnail.jpg", 8),
		item("7", "Pistachio Baklava", "4.00", "Baklava", "image-baklava-thumbnail.jpg", 30),
		item("8", "Lemon Meringue Pie", "5.00", "Pie", "image-meringue-thumbnail.jpg", 6),
		item("9", "Red Velvet Cake", "4.50", "Cake", "image-cake-thumbnail.jpg", 9),
		item("10", "Salted Caramel Brownie", "4.50", "Brownie", "image-brownie-thumbnail.jpg", 0),
	}
}
