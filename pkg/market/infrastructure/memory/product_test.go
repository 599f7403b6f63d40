package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

func TestConcurrentDecrement(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	product := &model.Product{Name: "Fresh Tomatoes", Price: decimal.NewFromInt(40), Quantity: decimal.NewFromInt(25), Version: 1}
	require.NoError(t, repo.Create(ctx, product))

	half := decimal.RequireFromString("0.5")
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.DecrementStock(ctx, product.ID, half); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, model.ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, succeeded)
	stored, err := repo.Find(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, stored.Quantity.IsZero())
	assert.Equal(t, 51, stored.Version)
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	seeded := &model.Product{ID: 5, Name: "Organic Milk", Version: 1}
	require.NoError(t, repo.Create(ctx, seeded))
	created := &model.Product{Name: "Honey", Version: 1}
	require.NoError(t, repo.Create(ctx, created))
	assert.Equal(t, int64(6), created.ID)

	t.Run("Stale update", func(t *testing.T) {
		stale := *seeded
		stale.Version = 3
		assert.ErrorIs(t, repo.Update(ctx, &stale), model.ErrOptimisticLock)
	})

	t.Run("Returned products are copies", func(t *testing.T) {
		found, err := repo.Find(ctx, 5)
		require.NoError(t, err)
		found.Name = "changed"

		again, err := repo.Find(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Organic Milk", again.Name)
	})

	t.Run("Restore adds stock back", func(t *testing.T) {
		product, err := repo.RestoreStock(ctx, 5, decimal.NewFromInt(2))
		require.NoError(t, err)
		assert.Equal(t, "2", product.Quantity.String())
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 6))
		assert.ErrorIs(t, repo.Delete(ctx, 6), model.ErrProductNotFound)
	})
}
