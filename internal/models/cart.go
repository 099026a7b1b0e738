package models

import (
	"encoding/json"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/money"
)

// AddItemRequest adds one unit of a product to the cart.
// productId may be sent as a string or an integer.
type AddItemRequest struct {
	ProductID catalog.ID `json:"productId"`
}

// UpdateQuantityRequest sets the quantity of a cart line
type UpdateQuantityRequest struct {
	Quantity json.Number `json:"quantity"`
}

// CartItem is one cart line. Amounts are in cents with formatted twins.
type CartItem struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Image              string `json:"image"`
	Quantity           int    `json:"quantity"`
	Stock              int    `json:"stock"`
	UnitPrice          int64  `json:"unitPrice"`
	UnitPriceFormatted string `json:"unitPriceFormatted"`
	LineTotal          int64  `json:"lineTotal"`
	LineTotalFormatted string `json:"lineTotalFormatted"`
}

// Cart is the session cart as rendered by the UI
type Cart struct {
	Items          []CartItem `json:"items"`
	ItemCount      int        `json:"itemCount"`
	Total          int64      `json:"total"`
	TotalFormatted string     `json:"totalFormatted"`
}

// NewCartItem converts a line item for output
func NewCartItem(li cart.LineItem) CartItem {
	return CartItem{
		ID:                 li.ID(),
		Name:               li.Name(),
		Image:              li.ImageRef(),
		Quantity:           li.Quantity(),
		Stock:              li.Stock(),
		UnitPrice:          li.UnitPrice(),
		UnitPriceFormatted: li.UnitPriceFormatted(),
		LineTotal:          li.LineTotal(),
		LineTotalFormatted: li.LineTotalFormatted(),
	}
}

// NewCart renders a consistent snapshot of c
func NewCart(c *cart.Cart) Cart {
	items, total := c.Snapshot()

	out := Cart{
		Items:          make([]CartItem, 0, len(items)),
		Total:          total,
		TotalFormatted: money.Format(total),
	}
	for _, li := range items {
		out.Items = append(out.Items, NewCartItem(li))
		out.ItemCount += li.Quantity()
	}
	return out
}
