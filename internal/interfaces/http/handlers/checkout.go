// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-backend/internal/domain/checkout"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	carts           *CartOpener
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, carts *CartOpener) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		carts:           carts,
	}
}

// GetOptions handles GET /checkout/options
func (h *CheckoutHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout options retrieved successfully",
		"data": gin.H{
			"payment_methods":  checkout.PaymentMethods(),
			"delivery_methods": checkout.DeliveryMethods(),
		},
	})
}

// ValidateCheckout handles POST /checkout/validate
func (h *CheckoutHandler) ValidateCheckout(c *gin.Context) {
	var form checkout.OrderForm
	if !bindForm(c, &form) {
		return
	}

	if errs := h.checkoutService.Validate(form); !errs.Empty() {
		validationFailed(c, errs)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout data is valid",
	})
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var form checkout.OrderForm
	if !bindForm(c, &form) {
		return
	}

	store, ok := h.carts.open(c)
	if !ok {
		return
	}

	result, err := h.checkoutService.Submit(c.Request.Context(), store, form)
	if err != nil {
		respondError(c, err)
		return
	}

	switch result.Status {
	case checkout.StatusRejected:
		validationFailed(c, result.Errors)
	case checkout.StatusAccepted:
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order accepted",
			"data":    result,
		})
	case checkout.StatusSucceeded:
		c.JSON(http.StatusOK, gin.H{
			"message": "Payment completed successfully",
			"data":    result,
		})
	case checkout.StatusCancelled:
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Payment cancelled",
			"data":  result,
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment failed",
			"data":  result,
		})
	}
}

func bindForm(c *gin.Context, form *checkout.OrderForm) bool {
	if err := c.ShouldBindJSON(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return false
	}
	return true
}

func validationFailed(c *gin.Context, errs checkout.FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  "validation failed",
		"fields": errs,
	})
}
