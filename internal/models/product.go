package models

import (
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/money"
)

// Product is a catalog entry as served to the storefront UI.
// Price is echoed in dollars; PriceCents is authoritative.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	PriceCents     int64           `json:"priceCents"`
	PriceFormatted string          `json:"priceFormatted"`
	Stock          int             `json:"stock"`
	Image          string          `json:"image"`
	Category       string          `json:"category"`
	Description    string          `json:"description,omitempty"`
	Rating         *Rating         `json:"rating,omitempty"`
}

// Rating summarizes product reviews
type Rating struct {
	Rate  decimal.Decimal `json:"rate"`
	Count int             `json:"count"`
}

// NewProduct converts a catalog product for output
func NewProduct(p catalog.Product) Product {
	out := Product{
		ID:             p.ID,
		Name:           p.Title,
		Price:          money.ToMajor(p.PriceMinor),
		PriceCents:     p.PriceMinor,
		PriceFormatted: money.Format(p.PriceMinor),
		Stock:          p.Stock,
		Image:          p.Image,
		Category:       p.Category,
		Description:    p.Description,
	}
	if p.Rating.Count > 0 || !p.Rating.Rate.IsZero() {
		out.Rating = &Rating{Rate: p.Rating.Rate, Count: p.Rating.Count}
	}
	return out
}

// NewProducts converts a slice of catalog products
func NewProducts(products []catalog.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, NewProduct(p))
	}
	return out
}
