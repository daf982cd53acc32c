package service

import (
	"strings"

	"github.com/teewear/storefront/catalog/pkg/request"
	"github.com/teewear/storefront/catalog/pkg/response"
	"github.com/teewear/storefront/internal/repository"
)

// FilterProducts applies the storefront's secondary filter over a fetched
// page: category membership, inclusive price range and case-insensitive
// substring search on title or description. Order of the input is preserved.
func FilterProducts(
	products []response.Product,
	filter request.ProductFilter,
) []response.Product {
	if filter.Empty() {
		return products
	}

	search := strings.ToLower(filter.Search)
	filtered := make([]response.Product, 0, len(products))
	for _, product := range products {
		if !matchesCategory(product, filter.Categories) {
			continue
		}
		if filter.MinPrice.Valid && product.Price.LessThan(filter.MinPrice.Decimal) {
			continue
		}
		if filter.MaxPrice.Valid && product.Price.GreaterThan(filter.MaxPrice.Decimal) {
			continue
		}
		if search != "" && !matchesSearch(product, search) {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}

func matchesCategory(product response.Product, categories []repository.Category) bool {
	if len(categories) == 0 {
		return true
	}
	for _, category := range categories {
		if product.Category == string(category) {
			return true
		}
	}
	return false
}

func matchesSearch(product response.Product, search string) bool {
	return strings.Contains(strings.ToLower(product.Title), search) ||
		strings.Contains(strings.ToLower(product.Description), search)
}
