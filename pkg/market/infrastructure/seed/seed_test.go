package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
	"github.com/sijin45/greenlink-farm-connect/pkg/market/infrastructure/memory"
)

func TestDefault(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	products, err := catalog.ProductModels(time.Now())
	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.Equal(t, "Fresh Tomatoes", products[0].Name)
	assert.Equal(t, "25.5", products[0].Quantity.String())
	assert.Equal(t, 1, products[0].Version)

	vehicles, err := catalog.VehicleModels(time.Now())
	require.NoError(t, err)
	assert.Len(t, vehicles, 4)
}

func TestDecode(t *testing.T) {
	t.Run("Invalid yaml", func(t *testing.T) {
		_, err := Decode(strings.NewReader("products: ["))
		assert.Error(t, err)
	})

	t.Run("Invalid products are rejected", func(t *testing.T) {
		catalog, err := Decode(strings.NewReader("products:\n  - name: Bad\n    price: -1\n    quantity: 1\n"))
		require.NoError(t, err)

		_, err = catalog.ProductModels(time.Now())
		assert.ErrorIs(t, err, model.ErrInvalidProduct)
	})

	t.Run("Vehicles need a daily rate", func(t *testing.T) {
		catalog, err := Decode(strings.NewReader("vehicles:\n  - name: Cart\n"))
		require.NoError(t, err)

		_, err = catalog.VehicleModels(time.Now())
		assert.ErrorIs(t, err, model.ErrInvalidDailyRate)
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	catalog, err := Default()
	require.NoError(t, err)

	products := memory.NewProductRepository()
	vehicles := memory.NewVehicleRepository()

	require.NoError(t, Apply(ctx, catalog, products, vehicles))
	require.NoError(t, Apply(ctx, catalog, products, vehicles))

	all, err := products.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	fleet, err := vehicles.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, fleet, 4)

	tomatoes, err := products.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Tomatoes", tomatoes.Name)
}

func TestLoadFile(t *testing.T) {
	_, err := LoadFile("/nonexistent/catalog.yaml")
	assert.Error(t, err)

	catalog, err := LoadFile("")
	require.NoError(t, err)
	assert.NotEmpty(t, catalog.Products)
}
