package tests

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
)

type wishlistFixture struct {
	svc        service.WishlistService
	products   *mockProductRepository
	wishlists  *mockWishlistRepository
	dispatcher *mockEventDispatcher
}

func setupWishlist(t *testing.T) wishlistFixture {
	t.Helper()
	f := wishlistFixture{
		products:   newMockProductRepository(),
		wishlists:  newMockWishlistRepository(),
		dispatcher: &mockEventDispatcher{},
	}
	f.svc = service.NewWishlistService(f.products, f.wishlists, f.dispatcher)
	return f
}

func TestWishlistService(t *testing.T) {
	ctx := context.Background()

	t.Run("Saved products come back in the order they were added", func(t *testing.T) {
		f := setupWishlist(t)
		tomatoes := seedProduct(f.products, "Fresh Tomatoes", "40", "25.5")
		milk := seedProduct(f.products, "Organic Milk", "60", "50")

		require.NoError(t, f.svc.Add(ctx, session, milk.ID))
		require.NoError(t, f.svc.Add(ctx, session, tomatoes.ID))

		items, err := f.svc.Items(ctx, session)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Organic Milk", items[0].Name)
		assert.Equal(t, "Fresh Tomatoes", items[1].Name)
		assert.Equal(t, []string{"ProductWishlisted", "ProductWishlisted"}, f.dispatcher.Types())
	})

	t.Run("Adding twice keeps one entry", func(t *testing.T) {
		f := setupWishlist(t)
		p := seedProduct(f.products, "Fresh Tomatoes", "40", "25.5")

		require.NoError(t, f.svc.Add(ctx, session, p.ID))
		require.NoError(t, f.svc.Add(ctx, session, p.ID))

		items, err := f.svc.Items(ctx, session)
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Len(t, f.dispatcher.Types(), 1)
	})

	t.Run("Unknown product is rejected", func(t *testing.T) {
		f := setupWishlist(t)

		err := f.svc.Add(ctx, session, 42)

		assert.ErrorIs(t, err, model.ErrProductNotFound)
		ok, err := f.svc.Contains(ctx, session, 42)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Contains and remove", func(t *testing.T) {
		f := setupWishlist(t)
		p := seedProduct(f.products, "Fresh Tomatoes", "40", "25.5")
		require.NoError(t, f.svc.Add(ctx, session, p.ID))

		ok, err := f.svc.Contains(ctx, session, p.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, f.svc.Remove(ctx, session, p.ID))
		ok, err = f.svc.Contains(ctx, session, p.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		f.dispatcher.Reset()
		require.NoError(t, f.svc.Remove(ctx, session, p.ID))
		assert.Empty(t, f.dispatcher.Types())
	})

	t.Run("Wishlists are kept per session", func(t *testing.T) {
		f := setupWishlist(t)
		p := seedProduct(f.products, "Fresh Tomatoes", "40", "25.5")
		require.NoError(t, f.svc.Add(ctx, session, p.ID))

		items, err := f.svc.Items(ctx, "session-2")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Deleted products are skipped", func(t *testing.T) {
		f := setupWishlist(t)
		tomatoes := seedProduct(f.products, "Fresh Tomatoes", "40", "25.5")
		milk := seedProduct(f.products, "Organic Milk", "60", "50")
		require.NoError(t, f.svc.Add(ctx, session, tomatoes.ID))
		require.NoError(t, f.svc.Add(ctx, session, milk.ID))
		require.NoError(t, f.products.Delete(ctx, tomatoes.ID))

		items, err := f.svc.Items(ctx, session)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, milk.ID, items[0].ID)
	})

	t.Run("Clear empties the wishlist", func(t *testing.T) {
		f := setupWishlist(t)
		p := seedProduct(f.products, "Fresh Tomatoes", "40", "25.5")
		require.NoError(t, f.svc.Add(ctx, session, p.ID))

		require.NoError(t, f.svc.Clear(ctx, session))

		items, err := f.svc.Items(ctx, session)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Store failure is reported without an event", func(t *testing.T) {
		f := setupWishlist(t)
		p := seedProduct(f.products, "Fresh Tomatoes", "40", "25.5")
		f.wishlists.failStore = true

		err := f.svc.Add(ctx, session, p.ID)

		assert.ErrorIs(t, err, errStoreUnavailable)
		assert.Empty(t, f.dispatcher.Types())
	})

	t.Run("Session is required", func(t *testing.T) {
		f := setupWishlist(t)

		assert.ErrorIs(t, f.svc.Add(ctx, "", 1), model.ErrInvalidSession)
		assert.ErrorIs(t, f.svc.Remove(ctx, "", 1), model.ErrInvalidSession)
		assert.ErrorIs(t, f.svc.Clear(ctx, ""), model.ErrInvalidSession)
		_, err := f.svc.Items(ctx, "")
		assert.ErrorIs(t, err, model.ErrInvalidSession)
		_, err = f.svc.Contains(ctx, "", 1)
		assert.ErrorIs(t, err, model.ErrInvalidSession)
	})
}

func TestWishlistService_ConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	f := setupWishlist(t)

	var ids []int64
	for i := 0; i < 20; i++ {
		ids = append(ids, seedProduct(f.products, fmt.Sprintf("Product %d", i), "10", "5").ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			assert.NoError(t, f.svc.Add(ctx, session, id))
		}(id)
	}
	wg.Wait()

	items, err := f.svc.Items(ctx, session)
	require.NoError(t, err)
	assert.Len(t, items, len(ids))
}
