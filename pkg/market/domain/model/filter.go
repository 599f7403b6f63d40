package model

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type SortOrder string

const (
	SortByName      SortOrder = "name"
	SortByPriceLow  SortOrder = "price-low"
	SortByPriceHigh SortOrder = "price-high"
	SortByCategory  SortOrder = "category"
)

// ProductFilter mirrors the storefront search box. Zero values match everything.
type ProductFilter struct {
	Query             string
	Category          string
	MinPrice          decimal.NullDecimal
	MaxPrice          decimal.NullDecimal
	IncludeOutOfStock bool
	Sort              SortOrder
}

func (f ProductFilter) Matches(p Product) bool {
	if !f.IncludeOutOfStock && !p.InStock() {
		return false
	}
	if f.Category != "" && f.Category != "all" && p.Category != f.Category {
		return false
	}
	if f.MinPrice.Valid && p.Price.LessThan(f.MinPrice.Decimal) {
		return false
	}
	if f.MaxPrice.Valid && p.Price.GreaterThan(f.MaxPrice.Decimal) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	}
	return true
}

// Apply returns the matching products in the requested order. The input is not modified.
func (f ProductFilter) Apply(products []Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			result = append(result, p)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch f.Sort {
		case SortByPriceLow:
			return a.Price.LessThan(b.Price)
		case SortByPriceHigh:
			return a.Price.GreaterThan(b.Price)
		case SortByCategory:
			return a.Category < b.Category
		default:
			return a.Name < b.Name
		}
	})
	return result
}

func ParseSortOrder(s string) SortOrder {
	switch order := SortOrder(s); order {
	case SortByPriceLow, SortByPriceHigh, SortByCategory:
		return order
	}
	return SortByName
}

// Categories returns the distinct product categories in alphabetical order.
func Categories(products []Product) []string {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories
}
