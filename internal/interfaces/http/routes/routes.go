// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
)

// Handlers bundles the handlers mounted under the API group
type Handlers struct {
	Catalog  *handlers.CatalogHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, h Handlers) {
	SetupCatalogRoutes(rg, h.Catalog)
	SetupCartRoutes(rg, h.Cart)
	SetupCheckoutRoutes(rg, h.Checkout)
}

// SetupCatalogRoutes sets up the storefront page routes
func SetupCatalogRoutes(rg *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	rg.GET("/home", catalogHandler.GetHome)

	categories := rg.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories)
		categories.GET("/:slug", catalogHandler.GetCategory)
	}

	rg.GET("/products/:slug", catalogHandler.GetProductBySlug)
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, cartHandler *handlers.CartHandler) {
	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

// SetupCheckoutRoutes sets up checkout related routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler) {
	checkout := rg.Group("/checkout")
	{
		checkout.GET("/options", checkoutHandler.GetOptions)
		checkout.POST("/validate", checkoutHandler.ValidateCheckout)
		checkout.POST("", checkoutHandler.Submit)
	}
}
