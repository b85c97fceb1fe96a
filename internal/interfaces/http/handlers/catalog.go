// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

const (
	relatedProductsLimit = 4
	newArrivalsLimit     = 3
	bestsellersLimit     = 8
)

// CatalogHandler serves the storefront pages' data
type CatalogHandler struct {
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetHome handles GET /home
func (h *CatalogHandler) GetHome(c *gin.Context) {
	ctx := c.Request.Context()

	bestsellers, err := h.catalogService.Bestsellers(ctx, bestsellersLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	newArrivals, err := h.catalogService.NewArrivals(ctx, newArrivalsLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	var dealOfTheDay *catalog.Product
	if len(bestsellers) > 0 {
		dealOfTheDay = &bestsellers[0]
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Home page retrieved successfully",
		"data": gin.H{
			"deal_of_the_day": dealOfTheDay,
			"bestsellers":     bestsellers,
			"new_arrivals":    newArrivals,
		},
	})
}

// GetCategories handles GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}

// GetCategory handles GET /categories/:slug
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	listing, err := h.catalogService.CategoryListing(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category retrieved successfully",
		"data":    listing,
	})
}

// GetProductBySlug handles GET /products/:slug
func (h *CatalogHandler) GetProductBySlug(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := h.catalogService.ProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	related, err := h.catalogService.RelatedProducts(ctx, product, relatedProductsLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data": gin.H{
			"product":          product,
			"primary_image":    product.PrimaryImage(),
			"related_products": related,
		},
	})
}
