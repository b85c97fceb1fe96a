// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// MaxLineQuantity bounds the units of one product in a cart
const MaxLineQuantity = 999

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrQuantityTooLarge = fmt.Errorf("quantity must be at most %d", MaxLineQuantity)
)

// Store owns one cart and persists every change to its storage slot.
// A mutation is applied in memory only after the new snapshot was saved,
// so a failed save leaves the store unchanged.
type Store struct {
	mu        sync.Mutex
	storage   Storage
	key       string
	cart      Cart
	discarded error
}

// Open restores the cart saved under key, or starts with an empty cart.
// An unreadable snapshot is discarded in favour of an empty cart; the decode
// error is kept for Discarded. Storage failures are returned.
func Open(ctx context.Context, storage Storage, key string) (*Store, error) {
	c, found, err := storage.Load(ctx, key)
	var discarded error
	if errors.Is(err, ErrCorruptSnapshot) {
		discarded, err = err, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !found {
		c = Empty()
	}

	return &Store{
		storage:   storage,
		key:       key,
		cart:      normalize(c),
		discarded: discarded,
	}, nil
}

// Discarded returns the decode error of a snapshot that Open replaced with
// an empty cart, or nil.
func (s *Store) Discarded() error {
	return s.discarded
}

// Key returns the storage key of this cart
func (s *Store) Key() string {
	return s.key
}

// Cart returns a copy of the current snapshot
func (s *Store) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.clone()
}

// Count returns the total number of units in the cart
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems
}

// Add puts quantity units of product into the cart, merging with an existing line
func (s *Store) Add(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if quantity > MaxLineQuantity {
		return ErrQuantityTooLarge
	}

	return s.mutate(ctx, func(c *Cart) error {
		if i := c.indexOf(product.ID); i >= 0 {
			if c.Items[i].Quantity+quantity > MaxLineQuantity {
				return ErrQuantityTooLarge
			}
			c.Items[i].Quantity += quantity
			return nil
		}
		c.Items = append(c.Items, CartItem{Product: product, Quantity: quantity})
		return nil
	})
}

// Remove deletes the line for productID. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	return s.mutate(ctx, func(c *Cart) error {
		removeItem(c, productID)
		return nil
	})
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line; an unknown productID is ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity > MaxLineQuantity {
		return ErrQuantityTooLarge
	}

	return s.mutate(ctx, func(c *Cart) error {
		if quantity <= 0 {
			removeItem(c, productID)
			return nil
		}
		if i := c.indexOf(productID); i >= 0 {
			c.Items[i].Quantity = quantity
		}
		return nil
	})
}

// Clear resets the cart to the empty state
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func(c *Cart) error {
		*c = Empty()
		return nil
	})
}

func (s *Store) mutate(ctx context.Context, apply func(*Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.clone()
	if err := apply(&next); err != nil {
		return err
	}
	next.recalculate()

	if err := s.storage.Save(ctx, s.key, next); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	s.cart = next
	return nil
}

func removeItem(c *Cart, productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// normalize drops lines with a quantity outside 1..MaxLineQuantity and
// recomputes the derived fields of a restored snapshot.
func normalize(c Cart) Cart {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Quantity >= 1 && item.Quantity <= MaxLineQuantity {
			items = append(items, item)
		}
	}
	c.Items = items
	c.recalculate()
	return c
}
