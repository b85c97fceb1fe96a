// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// UnknownCategoryName is shown for a category slug that has products but no display name
const UnknownCategoryName = "Category not found"

// Service answers catalog queries for the storefront pages
type Service struct {
	repo Repository
}

// NewService creates a new catalog service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ProductBySlug resolves the product detail page
func (s *Service) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.repo.ProductBySlug(ctx, slug)
}

// ProductByID looks a product up by identifier
func (s *Service) ProductByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.ProductByID(ctx, id)
}

// Categories lists all categories
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.repo.Categories(ctx)
}

// CategoryListing resolves the category page. A slug without products is not found.
func (s *Service) CategoryListing(ctx context.Context, slug string) (*CategoryListing, error) {
	products, err := s.repo.ProductsByCategory(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrCategoryNotFound
	}

	name, err := s.categoryName(ctx, slug)
	if err != nil {
		return nil, err
	}

	listing := &CategoryListing{
		Slug:     slug,
		Name:     name,
		Products: products,
		MinPrice: products[0].Price,
		MaxPrice: products[0].Price,
	}
	for _, p := range products[1:] {
		if p.Price < listing.MinPrice {
			listing.MinPrice = p.Price
		}
		if p.Price > listing.MaxPrice {
			listing.MaxPrice = p.Price
		}
	}

	return listing, nil
}

// RelatedProducts returns up to limit other products from the same category
func (s *Service) RelatedProducts(ctx context.Context, product *Product, limit int) ([]Product, error) {
	if product == nil || limit <= 0 {
		return []Product{}, nil
	}

	candidates, err := s.repo.ProductsByCategory(ctx, product.Category)
	if err != nil {
		return nil, err
	}

	related := make([]Product, 0, limit)
	for _, p := range candidates {
		if p.ID == product.ID {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

// Bestsellers returns up to limit products flagged as bestsellers
func (s *Service) Bestsellers(ctx context.Context, limit int) ([]Product, error) {
	return s.filter(ctx, limit, func(p Product) bool { return p.IsBestseller })
}

// NewArrivals returns up to limit products flagged as new
func (s *Service) NewArrivals(ctx context.Context, limit int) ([]Product, error) {
	return s.filter(ctx, limit, func(p Product) bool { return p.IsNew })
}

func (s *Service) filter(ctx context.Context, limit int, keep func(Product) bool) ([]Product, error) {
	products, err := s.repo.Products(ctx)
	if err != nil {
		return nil, err
	}

	out := []Product{}
	for _, p := range products {
		if len(out) >= limit {
			break
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) categoryName(ctx context.Context, slug string) (string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if c.Slug == slug {
			return c.Name, nil
		}
	}
	return UnknownCategoryName, nil
}
