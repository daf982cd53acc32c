package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teewear/storefront/internal/repository"
)

// DefaultPageSize is used whenever the limit query param is absent or not a
// positive integer.
const DefaultPageSize = 20

type ListProducts struct {
	Limit  int32 `validate:"gt=0"`
	Cursor uuid.NullUUID
	Filter ProductFilter
}

// ProductFilter narrows an already fetched page of products. It never
// triggers additional page fetches, so its result is bounded by what has
// been paginated in.
type ProductFilter struct {
	Categories []repository.Category
	MinPrice   decimal.NullDecimal
	MaxPrice   decimal.NullDecimal
	Search     string
}

func (f ProductFilter) Empty() bool {
	return len(f.Categories) == 0 &&
		!f.MinPrice.Valid &&
		!f.MaxPrice.Valid &&
		f.Search == ""
}
