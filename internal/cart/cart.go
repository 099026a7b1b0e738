// Package cart holds the shopping cart value model: validated line items with
// stock-clamped quantities and exact integer totals in minor units.
//
// A Cart is safe for concurrent use. LineItems returned from a Cart are
// copies; changing their quantity does not affect the cart. Use
// Cart.SetQuantity for that.
package cart

import (
	"slices"
	"sync"

	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/money"
)

// MaxLines caps the number of distinct lines in a cart. At MaxStock units of
// money.MaxMinor each, MaxLines lines total at most 1e17 minor units.
const MaxLines = 10_000

// ErrCartFull is returned when adding a new line would exceed MaxLines.
var ErrCartFull = errors.New("cart is full")

// ProductRef is the catalog data needed to put a product in a cart.
type ProductRef struct {
	ID        string
	Name      string
	UnitPrice int64 // minor units
	Stock     int
	ImageRef  string
}

// Cart is an insertion-ordered set of LineItems keyed by ID.
type Cart struct {
	mu    sync.RWMutex
	order []string
	items map[string]*LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{items: make(map[string]*LineItem)}
}

// AddOrIncrement bumps the quantity of an existing line by one (clamped to
// stock) or appends a new line with quantity 1, or 0 when the product has no
// stock. A ref that fails validation returns a *ValidationError and leaves
// the cart unchanged; a new line beyond MaxLines returns ErrCartFull.
func (c *Cart) AddOrIncrement(ref ProductRef) (LineItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if li, ok := c.items[ref.ID]; ok {
		li.UpdateQuantity(li.quantity + 1)
		return *li, nil
	}
	if len(c.items) >= MaxLines {
		return LineItem{}, ErrCartFull
	}

	li, err := NewLineItem(Params{
		ID:        ref.ID,
		Name:      ref.Name,
		UnitPrice: ref.UnitPrice,
		Quantity:  min(1, ref.Stock),
		Stock:     ref.Stock,
		ImageRef:  ref.ImageRef,
	})
	if err != nil {
		return LineItem{}, err
	}

	c.items[li.id] = li
	c.order = append(c.order, li.id)
	return *li, nil
}

// SetQuantity clamps and applies quantity to the line with the given id.
// A missing id is not an error; ok reports whether the line existed.
func (c *Cart) SetQuantity(id string, quantity int) (item LineItem, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	li, ok := c.items[id]
	if !ok {
		return LineItem{}, false
	}
	li.UpdateQuantity(quantity)
	return *li, true
}

// Remove deletes the line with the given id. Missing ids are ignored.
func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*LineItem)
	c.order = nil
}

// Get returns a copy of the line with the given id.
func (c *Cart) Get(id string) (LineItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	li, ok := c.items[id]
	if !ok {
		return LineItem{}, false
	}
	return *li, true
}

// Items returns copies of every line in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Quantity returns the number of units across all lines.
func (c *Cart) Quantity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, li := range c.items {
		n += li.quantity
	}
	return n
}

// AggregateTotal is the sum of every line total in minor units. An empty
// cart totals zero.
func (c *Cart) AggregateTotal() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.aggregateTotal()
}

// AggregateTotalFormatted renders AggregateTotal, "$0.00" for an empty cart.
func (c *Cart) AggregateTotalFormatted() string {
	return money.Format(c.AggregateTotal())
}

// Snapshot returns the lines and their total under a single lock so the two
// always agree.
func (c *Cart) Snapshot() ([]LineItem, int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshot(), c.aggregateTotal()
}

func (c *Cart) snapshot() []LineItem {
	out := make([]LineItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

func (c *Cart) aggregateTotal() int64 {
	var total int64
	for _, li := range c.items {
		total += li.LineTotal()
	}
	return total
}
