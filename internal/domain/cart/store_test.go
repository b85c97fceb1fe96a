package cart

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

func int64Ptr(v int64) *int64 { return &v }

func discounted() catalog.Product {
	return catalog.Product{ID: "a", Slug: "a", Name: "Discounted", Price: 1000, OldPrice: int64Ptr(1200)}
}

func regular() catalog.Product {
	return catalog.Product{ID: "b", Slug: "b", Name: "Regular", Price: 500}
}

func openStore(t *testing.T) (*Store, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	store, err := Open(context.Background(), storage, "cart-storage:test")
	require.NoError(t, err)
	return store, storage
}

func TestOpenEmpty(t *testing.T) {
	store, _ := openStore(t)

	assert.Equal(t, Empty(), store.Cart())
	assert.Equal(t, 0, store.Count())
	assert.Equal(t, "cart-storage:test", store.Key())
}

func TestTotalsScenario(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)

	require.NoError(t, store.Add(ctx, discounted(), 2))
	require.NoError(t, store.Add(ctx, regular(), 1))

	c := store.Cart()
	assert.Equal(t, 3, c.TotalItems)
	assert.Equal(t, int64(2500), c.Subtotal)
	assert.Equal(t, int64(400), c.Discount)
	assert.Equal(t, int64(2500), c.Total)
}

func TestAddMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)

	require.NoError(t, store.Add(ctx, regular(), 2))
	require.NoError(t, store.Add(ctx, discounted(), 1))
	require.NoError(t, store.Add(ctx, regular(), 3))

	c := store.Cart()
	require.Len(t, c.Items, 2)
	assert.Equal(t, "b", c.Items[0].Product.ID)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, "a", c.Items[1].Product.ID)
	assert.Equal(t, 6, store.Count())
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	store, _ := openStore(t)

	err := store.Add(context.Background(), regular(), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.True(t, store.Cart().IsEmpty())
}

func TestQuantityIsBounded(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)

	assert.ErrorIs(t, store.Add(ctx, regular(), MaxLineQuantity+1), ErrQuantityTooLarge)
	assert.ErrorIs(t, store.Add(ctx, regular(), 1<<62), ErrQuantityTooLarge)
	assert.True(t, store.Cart().IsEmpty())

	require.NoError(t, store.Add(ctx, regular(), MaxLineQuantity-1))
	assert.ErrorIs(t, store.Add(ctx, regular(), 2), ErrQuantityTooLarge)
	require.NoError(t, store.Add(ctx, regular(), 1))
	assert.Equal(t, MaxLineQuantity, store.Count())

	assert.ErrorIs(t, store.UpdateQuantity(ctx, "b", MaxLineQuantity+1), ErrQuantityTooLarge)
	assert.ErrorIs(t, store.UpdateQuantity(ctx, "b", 1<<62), ErrQuantityTooLarge)

	c := store.Cart()
	require.Len(t, c.Items, 1)
	assert.Equal(t, MaxLineQuantity, c.Items[0].Quantity)
	assert.Equal(t, int64(MaxLineQuantity)*500, c.Total)
}

func TestOpenDropsOversizedLines(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(ctx, "k", Cart{Items: []CartItem{
		{Product: regular(), Quantity: 1 << 62},
		{Product: discounted(), Quantity: 3},
	}}))

	store, err := Open(ctx, storage, "k")
	require.NoError(t, err)

	c := store.Cart()
	require.Len(t, c.Items, 1)
	assert.Equal(t, "a", c.Items[0].Product.ID)
	assert.Equal(t, 3, c.TotalItems)
}

func TestOpenDiscardsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	storage.carts["k"] = []byte("{not json")

	store, err := Open(ctx, storage, "k")
	require.NoError(t, err)
	assert.Equal(t, Empty(), store.Cart())
	assert.ErrorIs(t, store.Discarded(), ErrCorruptSnapshot)

	// the next save replaces the unreadable slot
	require.NoError(t, store.Add(ctx, regular(), 1))
	reopened, err := Open(ctx, storage, "k")
	require.NoError(t, err)
	assert.NoError(t, reopened.Discarded())
	assert.Equal(t, 1, reopened.Count())
}

type unreachableStorage struct{}

func (unreachableStorage) Load(ctx context.Context, key string) (Cart, bool, error) {
	return Cart{}, false, errors.New("connection refused")
}

func (unreachableStorage) Save(ctx context.Context, key string, c Cart) error {
	return errors.New("connection refused")
}

func TestOpenReturnsStorageFailure(t *testing.T) {
	_, err := Open(context.Background(), unreachableStorage{}, "k")
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrCorruptSnapshot)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		quantity int
		want     []int
	}{
		{name: "set", id: "a", quantity: 7, want: []int{7, 1}},
		{name: "zero removes", id: "a", quantity: 0, want: []int{1}},
		{name: "negative removes", id: "a", quantity: -1, want: []int{1}},
		{name: "unknown id", id: "zzz", quantity: 4, want: []int{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := openStore(t)
			require.NoError(t, store.Add(ctx, discounted(), 2))
			require.NoError(t, store.Add(ctx, regular(), 1))

			require.NoError(t, store.UpdateQuantity(ctx, tt.id, tt.quantity))

			c := store.Cart()
			got := make([]int, 0, len(c.Items))
			sum := 0
			for _, item := range c.Items {
				got = append(got, item.Quantity)
				sum += item.Quantity
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, sum, c.TotalItems)
		})
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)
	require.NoError(t, store.Add(ctx, discounted(), 2))
	require.NoError(t, store.Add(ctx, regular(), 1))

	require.NoError(t, store.Remove(ctx, "a"))
	c := store.Cart()
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(0), c.Discount)
	assert.Equal(t, int64(500), c.Total)

	require.NoError(t, store.Remove(ctx, "missing"))
	assert.Len(t, store.Cart().Items, 1)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store, storage := openStore(t)
	require.NoError(t, store.Add(ctx, discounted(), 2))

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, Empty(), store.Cart())

	persisted, found, err := storage.Load(ctx, store.Key())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Empty(), persisted)
}

func TestDiscountIgnoresMissingOldPrice(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)

	zeroOld := catalog.Product{ID: "z", Price: 300, OldPrice: int64Ptr(0)}
	require.NoError(t, store.Add(ctx, regular(), 10))
	require.NoError(t, store.Add(ctx, zeroOld, 4))

	assert.Equal(t, int64(0), store.Cart().Discount)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, storage := openStore(t)

	rich := discounted()
	rich.Specifications = []catalog.Specification{{Name: "Color", Value: "Black"}}
	rich.Images = []catalog.Image{{ID: "i1", URL: "/a.webp", Alt: "a", IsPrimary: true}}
	require.NoError(t, store.Add(ctx, rich, 2))
	require.NoError(t, store.Add(ctx, regular(), 1))
	require.NoError(t, store.UpdateQuantity(ctx, "b", 4))

	reopened, err := Open(ctx, storage, store.Key())
	require.NoError(t, err)
	assert.Equal(t, store.Cart(), reopened.Cart())
}

func TestOpenRecomputesStaleTotals(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	stale := Cart{
		Items: []CartItem{
			{Product: regular(), Quantity: 2},
			{Product: discounted(), Quantity: 0},
		},
		TotalItems: 99,
		Subtotal:   1,
		Total:      1,
	}
	require.NoError(t, storage.Save(ctx, "k", stale))

	store, err := Open(ctx, storage, "k")
	require.NoError(t, err)

	c := store.Cart()
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.TotalItems)
	assert.Equal(t, int64(1000), c.Subtotal)
	assert.Equal(t, c.Subtotal, c.Total)
}

type failingStorage struct {
	*MemoryStorage
	fail bool
}

func (f *failingStorage) Save(ctx context.Context, key string, c Cart) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.MemoryStorage.Save(ctx, key, c)
}

func TestFailedSaveLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	storage := &failingStorage{MemoryStorage: NewMemoryStorage()}
	store, err := Open(ctx, storage, "k")
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, regular(), 1))

	storage.fail = true
	err = store.Add(ctx, discounted(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, 1, store.Count())
	assert.Len(t, store.Cart().Items, 1)
}

func TestCartReturnsIndependentCopy(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)
	require.NoError(t, store.Add(ctx, regular(), 1))

	c := store.Cart()
	c.Items[0].Quantity = 50

	assert.Equal(t, 1, store.Cart().Items[0].Quantity)
}

func TestDerivedFieldsFollowRandomMutations(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)
	rng := rand.New(rand.NewSource(7))

	products := []catalog.Product{
		discounted(),
		regular(),
		{ID: "c", Price: 250, OldPrice: int64Ptr(300)},
		{ID: "d", Price: 90},
	}

	for step := 0; step < 500; step++ {
		p := products[rng.Intn(len(products))]
		switch rng.Intn(3) {
		case 0:
			require.NoError(t, store.Add(ctx, p, 1+rng.Intn(3)))
		case 1:
			require.NoError(t, store.Remove(ctx, p.ID))
		case 2:
			require.NoError(t, store.UpdateQuantity(ctx, p.ID, rng.Intn(6)-1))
		}

		c := store.Cart()
		var units int
		var subtotal, discount int64
		seen := map[string]bool{}
		for _, item := range c.Items {
			require.GreaterOrEqual(t, item.Quantity, 1)
			require.False(t, seen[item.Product.ID], "duplicate line for %s", item.Product.ID)
			seen[item.Product.ID] = true

			units += item.Quantity
			subtotal += item.Product.Price * int64(item.Quantity)
			if item.Product.OldPrice != nil {
				discount += (*item.Product.OldPrice - item.Product.Price) * int64(item.Quantity)
			}
		}
		require.Equal(t, units, c.TotalItems)
		require.Equal(t, subtotal, c.Subtotal)
		require.Equal(t, discount, c.Discount)
		require.Equal(t, c.Subtotal, c.Total)
	}
}
