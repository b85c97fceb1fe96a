// internal/domain/cart/entity.go
package cart

import "github.com/your-org/storefront-backend/internal/domain/catalog"

// CartItem pairs a product with a quantity of at least one
type CartItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is the persisted cart snapshot. Items keep add order; the remaining
// fields are derived from Items by recalculate and never set on their own.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	Subtotal   int64      `json:"subtotal"`
	Discount   int64      `json:"discount"`
	// Total equals Subtotal. Discount is informational and not subtracted.
	Total int64 `json:"total"`
}

// Empty returns the canonical empty cart
func Empty() Cart {
	return Cart{Items: []CartItem{}}
}

// IsEmpty reports whether the cart has no line items
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

func (c Cart) indexOf(productID string) int {
	for i, item := range c.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) recalculate() {
	var totalItems int
	var subtotal, discount int64

	for _, item := range c.Items {
		qty := int64(item.Quantity)
		totalItems += item.Quantity
		subtotal += item.Product.Price * qty
		if item.Product.HasOldPrice() {
			discount += (*item.Product.OldPrice - item.Product.Price) * qty
		}
	}

	c.TotalItems = totalItems
	c.Subtotal = subtotal
	c.Discount = discount
	c.Total = subtotal
}
