package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

// maxCartBody caps cart request bodies; they carry a single id or quantity.
const maxCartBody = 4 << 10

// CartHandler handles cart-related HTTP requests for the caller's session
type CartHandler struct {
	cartService *service.CartService
	log         *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		log:         log,
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, r)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req models.AddItemRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCartBody)).Decode(&req); err != nil {
		log.Warn("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if req.ProductID == "" {
		WriteError(w, http.StatusBadRequest, "productId is required", h.log)
		return
	}

	_, err := h.cartService.AddProduct(r.Context(), middleware.SessionID(r.Context()), string(req.ProductID))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeCart(w, r)
}

// UpdateItem handles PUT /api/cart/items/{itemId}. Quantities are clamped to
// the item's stock; an unknown item leaves the cart untouched.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	var req models.UpdateQuantityRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCartBody)).Decode(&req); err != nil {
		log.Warn("failed to decode update request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	quantity, err := cart.ParseQuantity(req.Quantity)
	if err != nil {
		log.Warn("rejected quantity", "item_id", itemID, "quantity", req.Quantity.String())
		WriteError(w, http.StatusBadRequest, "Quantity must be a whole number", h.log)
		return
	}

	if _, _, err := h.cartService.SetQuantity(r.Context(), middleware.SessionID(r.Context()), itemID, quantity); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeCart(w, r)
}

// RemoveItem handles DELETE /api/cart/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	if _, err := h.cartService.RemoveItem(r.Context(), middleware.SessionID(r.Context()), itemID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeCart(w, r)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.Clear(r.Context(), middleware.SessionID(r.Context())); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeCart(w, r)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartService.Cart(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, models.NewCart(c), h.log)
}

func (h *CartHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrSessionRequired):
		WriteError(w, http.StatusBadRequest, "Session required", h.log)
	case errors.Is(err, repository.ErrProductNotFound):
		log.Info("product not found", "error", err)
		WriteError(w, http.StatusNotFound, "Product not found", h.log)
	case errors.Is(err, cart.ErrCartFull):
		WriteError(w, http.StatusConflict, "Cart is full", h.log)
	case cart.KindOf(err) != 0:
		log.Error("catalog product failed cart validation", "kind", cart.KindOf(err).String(), "error", err)
		WriteError(w, http.StatusUnprocessableEntity, "Product cannot be added to cart", h.log)
	default:
		log.Error("cart operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
