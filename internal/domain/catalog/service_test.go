package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticService() *Service {
	return NewService(NewStaticRepository())
}

func TestProductBySlug(t *testing.T) {
	ctx := context.Background()
	svc := newStaticService()

	p, err := svc.ProductBySlug(ctx, "apple-iphone-15-128gb")
	require.NoError(t, err)
	assert.Equal(t, "p-1001", p.ID)

	_, err = svc.ProductBySlug(ctx, "no-such-phone")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductByID(t *testing.T) {
	ctx := context.Background()
	svc := newStaticService()

	p, err := svc.ProductByID(ctx, "p-3002")
	require.NoError(t, err)
	assert.Equal(t, "samsung-990-pro-1tb", p.Slug)

	_, err = svc.ProductByID(ctx, "p-0000")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCategoryListing(t *testing.T) {
	ctx := context.Background()
	svc := newStaticService()

	listing, err := svc.CategoryListing(ctx, "components")
	require.NoError(t, err)
	assert.Equal(t, "PC components", listing.Name)
	assert.Len(t, listing.Products, 2)
	assert.Equal(t, int64(1149000), listing.MinPrice)
	assert.Equal(t, int64(1399000), listing.MaxPrice)
}

func TestCategoryListingNotFound(t *testing.T) {
	_, err := newStaticService().CategoryListing(context.Background(), "furniture")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryListingUnknownName(t *testing.T) {
	repo := NewMemoryRepository([]Product{
		{ID: "x1", Slug: "x1", Category: "clearance", Price: 500},
	}, nil)

	listing, err := NewService(repo).CategoryListing(context.Background(), "clearance")
	require.NoError(t, err)
	assert.Equal(t, UnknownCategoryName, listing.Name)
	assert.Equal(t, int64(500), listing.MinPrice)
	assert.Equal(t, int64(500), listing.MaxPrice)
}

func TestRelatedProducts(t *testing.T) {
	ctx := context.Background()
	svc := newStaticService()

	p, err := svc.ProductBySlug(ctx, "apple-iphone-15-128gb")
	require.NoError(t, err)

	related, err := svc.RelatedProducts(ctx, p, 4)
	require.NoError(t, err)
	require.Len(t, related, 2)
	for _, r := range related {
		assert.Equal(t, "smartphones", r.Category)
		assert.NotEqual(t, p.ID, r.ID)
	}

	related, err = svc.RelatedProducts(ctx, p, 1)
	require.NoError(t, err)
	assert.Len(t, related, 1)
	assert.Equal(t, "p-1002", related[0].ID)
}

func TestBestsellersAndNewArrivals(t *testing.T) {
	ctx := context.Background()
	svc := newStaticService()

	best, err := svc.Bestsellers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, best, 1)
	assert.Equal(t, "p-1001", best[0].ID)

	fresh, err := svc.NewArrivals(ctx, 3)
	require.NoError(t, err)
	require.Len(t, fresh, 3)
	for _, p := range fresh {
		assert.True(t, p.IsNew)
	}

	none, err := svc.NewArrivals(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPrimaryImage(t *testing.T) {
	p := Product{Images: []Image{{ID: "a"}, {ID: "b", IsPrimary: true}}}
	assert.Equal(t, "b", p.PrimaryImage().ID)

	p = Product{Images: []Image{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, "a", p.PrimaryImage().ID)

	assert.Equal(t, Image{}, Product{}.PrimaryImage())
}

func TestHasOldPrice(t *testing.T) {
	zero := int64(0)
	old := int64(1200)

	assert.False(t, Product{}.HasOldPrice())
	assert.False(t, Product{OldPrice: &zero}.HasOldPrice())
	assert.True(t, Product{OldPrice: &old}.HasOldPrice())
}
