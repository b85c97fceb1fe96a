// internal/domain/catalog/repository.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is the read-only source of catalog data.
// Products are returned in catalog order.
type Repository interface {
	Products(ctx context.Context) ([]Product, error)
	ProductBySlug(ctx context.Context, slug string) (*Product, error)
	ProductByID(ctx context.Context, id string) (*Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
}

// MemoryRepository serves a fixed catalog held in memory
type MemoryRepository struct {
	products   []Product
	categories []Category
}

// NewMemoryRepository creates a repository over the given data
func NewMemoryRepository(products []Product, categories []Category) *MemoryRepository {
	return &MemoryRepository{
		products:   products,
		categories: categories,
	}
}

// NewStaticRepository creates a repository over the built-in storefront catalog
func NewStaticRepository() *MemoryRepository {
	return NewMemoryRepository(StaticProducts(), StaticCategories())
}

func (r *MemoryRepository) Products(ctx context.Context) ([]Product, error) {
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *MemoryRepository) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	for i := range r.products {
		if r.products[i].Slug == slug {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *MemoryRepository) ProductByID(ctx context.Context, id string) (*Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *MemoryRepository) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	var out []Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Categories(ctx context.Context) ([]Category, error) {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

// GormRepository reads the catalog from a SQL database
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm-backed catalog repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

func (r *GormRepository) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *GormRepository) ProductByID(ctx context.Context, id string) (*Product, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormRepository) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("sort_order ASC, id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve category products: %w", err)
	}
	return products, nil
}

func (r *GormRepository) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("sort_order ASC, slug ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

func (r *GormRepository) first(ctx context.Context, query string, arg string) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).Where(query, arg).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &product, nil
}
