package cart

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/money"
)

// MinQuantity is the lowest quantity UpdateQuantity will clamp to. A line at
// zero stays in the cart as a reserved entry; Remove is the only way to drop it.
const MinQuantity = 0

// MaxStock is the highest stock a line may carry. With money.MaxMinor it
// bounds a single line total to 1e13 minor units.
const MaxStock = 100_000

// Params holds the fields required to build a LineItem.
type Params struct {
	// ID is optional; a UUID is generated when empty.
	ID        string
	Name      string
	UnitPrice int64 // minor units
	Quantity  int
	Stock     int
	ImageRef  string
}

// LineItem is one product held in a cart. Its identity and price are fixed at
// construction; quantity changes only through UpdateQuantity, which keeps it
// within [MinQuantity, Stock].
type LineItem struct {
	id        string
	name      string
	unitPrice int64
	quantity  int
	stock     int
	imageRef  string
}

// NewLineItem validates p and returns the item, or a *ValidationError.
func NewLineItem(p Params) (*LineItem, error) {
	if err := ValidatePrice(p.UnitPrice); err != nil {
		return nil, err
	}
	if err := ValidateStock(p.Stock); err != nil {
		return nil, err
	}
	if err := ValidateQuantity(p.Quantity, p.Stock); err != nil {
		return nil, err
	}
	img, err := ValidateImageRef(p.ImageRef)
	if err != nil {
		return nil, err
	}
	if err := ValidateName(p.Name); err != nil {
		return nil, err
	}

	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &LineItem{
		id:        id,
		name:      p.Name,
		unitPrice: p.UnitPrice,
		quantity:  p.Quantity,
		stock:     p.Stock,
		imageRef:  img.String(),
	}, nil
}

// ValidatePrice rejects negative prices and prices above money.MaxMinor.
func ValidatePrice(minor int64) error {
	if minor < 0 {
		return newValidationError(InvalidPrice, "price", "must not be negative")
	}
	if minor > money.MaxMinor {
		return newValidationError(InvalidPrice, "price", "exceeds "+money.Format(money.MaxMinor))
	}
	return nil
}

// ValidateStock rejects negative stock and stock above MaxStock.
func ValidateStock(stock int) error {
	if stock < 0 {
		return newValidationError(InvalidStock, "stock", "must not be negative")
	}
	if stock > MaxStock {
		return newValidationError(InvalidStock, "stock", "exceeds the per-line limit")
	}
	return nil
}

// ValidateQuantity checks an initial quantity against stock.
func ValidateQuantity(quantity, stock int) error {
	if quantity < 0 {
		return newValidationError(InvalidQuantity, "quantity", "must not be negative")
	}
	if quantity > stock {
		return newValidationError(InvalidQuantity, "quantity", "exceeds stock")
	}
	return nil
}

// ValidateName rejects blank display names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return newValidationError(InvalidName, "name", "must not be empty")
	}
	return nil
}

// UpdateQuantity sets the quantity to n clamped into [MinQuantity, Stock].
// Out-of-range values are corrected, never rejected.
func (li *LineItem) UpdateQuantity(n int) {
	li.quantity = max(MinQuantity, min(n, li.stock))
}

func (li *LineItem) ID() string       { return li.id }
func (li *LineItem) Name() string     { return li.name }
func (li *LineItem) Quantity() int    { return li.quantity }
func (li *LineItem) Stock() int       { return li.stock }
func (li *LineItem) ImageRef() string { return li.imageRef }

// UnitPrice returns the price of one unit in minor units.
func (li *LineItem) UnitPrice() int64 { return li.unitPrice }

// UnitPriceFormatted returns the unit price as a currency string, e.g. "$12.35".
func (li *LineItem) UnitPriceFormatted() string { return money.Format(li.unitPrice) }

// LineTotal returns unit price times quantity in minor units.
func (li *LineItem) LineTotal() int64 { return li.unitPrice * int64(li.quantity) }

// LineTotalFormatted returns LineTotal as a currency string.
func (li *LineItem) LineTotalFormatted() string { return money.Format(li.LineTotal()) }
