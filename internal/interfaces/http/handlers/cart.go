// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"` // defaults to 1
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartHandler handles cart endpoints
type CartHandler struct {
	catalogService *catalog.Service
	carts          *CartOpener
	metrics        *metrics.Storefront
}

// NewCartHandler creates a new cart handler
func NewCartHandler(catalogService *catalog.Service, carts *CartOpener, m *metrics.Storefront) *CartHandler {
	return &CartHandler{
		catalogService: catalogService,
		carts:          carts,
		metrics:        m,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	store, ok := h.carts.open(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    store.Cart(),
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	store, ok := h.carts.open(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data":    gin.H{"count": store.Count()},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalogService.ProductByID(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	store, ok := h.carts.open(c)
	if !ok {
		return
	}

	if err := store.Add(c.Request.Context(), *product, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.metrics.IncCartMutation("add")

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    store.Cart(),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store, ok := h.carts.open(c)
	if !ok {
		return
	}

	if err := store.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.metrics.IncCartMutation("update")

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    store.Cart(),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	store, ok := h.carts.open(c)
	if !ok {
		return
	}

	if err := store.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.metrics.IncCartMutation("remove")

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    store.Cart(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store, ok := h.carts.open(c)
	if !ok {
		return
	}

	if err := store.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.metrics.IncCartMutation("clear")

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    store.Cart(),
	})
}

// CartOpener opens the cart store of the request's session
type CartOpener struct {
	storage    cart.Storage
	storageKey string
	logger     *logrus.Logger
}

// NewCartOpener creates a CartOpener over storage with the given key prefix
func NewCartOpener(storage cart.Storage, storageKey string, logger *logrus.Logger) *CartOpener {
	return &CartOpener{storage: storage, storageKey: storageKey, logger: logger}
}

func (o *CartOpener) open(c *gin.Context) (*cart.Store, bool) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session required"})
		return nil, false
	}

	store, err := cart.Open(c.Request.Context(), o.storage, cart.SessionKey(o.storageKey, sessionID))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if err := store.Discarded(); err != nil {
		o.logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"cart_key":   store.Key(),
		}).Warn("Discarded unreadable cart snapshot")
	}
	return store, true
}
