package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func catalog() []Product {
	product := func(name, category, price, quantity string) Product {
		return Product{
			Name:     name,
			Category: category,
			Price:    decimal.RequireFromString(price),
			Quantity: decimal.RequireFromString(quantity),
		}
	}
	return []Product{
		product("Organic Milk", "Dairy", "60", "50"),
		product("Fresh Tomatoes", "Vegetables", "40", "25.5"),
		product("Seasonal Fruits", "Fruits", "80", "0"),
		product("Basmati Rice", "Grains", "120", "100"),
	}
}

func names(products []Product) []string {
	result := make([]string, 0, len(products))
	for _, p := range products {
		result = append(result, p.Name)
	}
	return result
}

func TestProductFilter(t *testing.T) {
	products := catalog()

	t.Run("Zero filter hides out of stock and sorts by name", func(t *testing.T) {
		assert.Equal(t, []string{"Basmati Rice", "Fresh Tomatoes", "Organic Milk"}, names(ProductFilter{}.Apply(products)))
	})

	t.Run("Out of stock on request", func(t *testing.T) {
		result := ProductFilter{IncludeOutOfStock: true, Category: "Fruits"}.Apply(products)
		assert.Equal(t, []string{"Seasonal Fruits"}, names(result))
	})

	t.Run("Price bounds are inclusive", func(t *testing.T) {
		filter := ProductFilter{
			MinPrice: decimal.NullDecimal{Decimal: decimal.NewFromInt(40), Valid: true},
			MaxPrice: decimal.NullDecimal{Decimal: decimal.NewFromInt(60), Valid: true},
			Sort:     SortByPriceHigh,
		}
		assert.Equal(t, []string{"Organic Milk", "Fresh Tomatoes"}, names(filter.Apply(products)))
	})

	t.Run("Query ignores case", func(t *testing.T) {
		assert.Equal(t, []string{"Organic Milk"}, names(ProductFilter{Query: "MILK"}.Apply(products)))
	})

	t.Run("Input order is untouched", func(t *testing.T) {
		ProductFilter{Sort: SortByPriceLow}.Apply(products)
		assert.Equal(t, "Organic Milk", products[0].Name)
	})

	t.Run("Unknown sort falls back to name", func(t *testing.T) {
		assert.Equal(t, SortByName, ParseSortOrder("newest"))
		assert.Equal(t, SortByCategory, ParseSortOrder("category"))
	})

	t.Run("Categories", func(t *testing.T) {
		assert.Equal(t, []string{"Dairy", "Fruits", "Grains", "Vegetables"}, Categories(products))
	})
}
