package service

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

var (
	ErrSessionRequired = errors.New("session id is required")
)

// CartService handles cart operations for browsing sessions
type CartService struct {
	sessions *SessionStore
	products repository.ProductRepository
	tracer   trace.Tracer
}

// NewCartService creates a new cart service
func NewCartService(sessions *SessionStore, products repository.ProductRepository) *CartService {
	return &CartService{
		sessions: sessions,
		products: products,
		tracer:   otel.Tracer(tracerName),
	}
}

func (s *CartService) cart(sessionID string) (*cart.Cart, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	return s.sessions.Get(sessionID), nil
}

func (s *CartService) start(ctx context.Context, name, sessionID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("session.id", sessionID)))
}

// Cart returns the session's cart
func (s *CartService) Cart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return s.cart(sessionID)
}

// AddProduct puts one unit of a catalog product in the session's cart, or
// one more if it is already there.
func (s *CartService) AddProduct(ctx context.Context, sessionID, productID string) (cart.LineItem, error) {
	ctx, span := s.start(ctx, "cart.add", sessionID)
	defer span.End()
	span.SetAttributes(attribute.String("product.id", productID))

	c, err := s.cart(sessionID)
	if err != nil {
		return cart.LineItem{}, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return cart.LineItem{}, err
	}

	item, err := c.AddOrIncrement(product.Ref())
	if err != nil {
		span.RecordError(err)
		return cart.LineItem{}, errors.Wrapf(err, "add product %s", productID)
	}

	logger.FromContext(ctx).Debug("cart item added",
		"session_id", sessionID,
		"product_id", productID,
		"quantity", item.Quantity(),
	)
	return item, nil
}

// SetQuantity clamps and applies quantity to a cart line. ok is false when
// the line is not in the cart, which is not treated as an error.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (item cart.LineItem, ok bool, err error) {
	ctx, span := s.start(ctx, "cart.set_quantity", sessionID)
	defer span.End()

	c, err := s.cart(sessionID)
	if err != nil {
		return cart.LineItem{}, false, err
	}

	item, ok = c.SetQuantity(itemID, quantity)
	if ok && item.Quantity() != quantity {
		logger.FromContext(ctx).Debug("cart quantity clamped",
			"session_id", sessionID,
			"item_id", itemID,
			"requested", quantity,
			"quantity", item.Quantity(),
		)
	}
	return item, ok, nil
}

// RemoveItem deletes a line from the cart. Missing lines are ignored.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, itemID string) (bool, error) {
	_, span := s.start(ctx, "cart.remove", sessionID)
	defer span.End()

	c, err := s.cart(sessionID)
	if err != nil {
		return false, err
	}
	return c.Remove(itemID), nil
}

// Clear empties the session's cart
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	_, span := s.start(ctx, "cart.clear", sessionID)
	defer span.End()

	c, err := s.cart(sessionID)
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}
