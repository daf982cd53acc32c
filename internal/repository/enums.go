package repository

import (
	"strings"

	inErrors "github.com/teewear/storefront/internal/errors"
)

type Category string

const (
	CategoryCasual         Category = "CASUAL"
	CategoryGraphic        Category = "GRAPHIC"
	CategorySports         Category = "SPORTS"
	CategoryPolo           Category = "POLO"
	CategoryLimitedEdition Category = "LIMITED_EDITION"
)

var categories = map[Category]struct{}{
	CategoryCasual:         {},
	CategoryGraphic:        {},
	CategorySports:         {},
	CategoryPolo:           {},
	CategoryLimitedEdition: {},
}

// ParseCategory normalizes s to uppercase and matches it against the closed
// category set. Unknown values yield ErrInvalidCategory instead of being
// coerced into the query.
func ParseCategory(s string) (Category, error) {
	category := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := categories[category]; !ok {
		return "", inErrors.ErrInvalidCategory
	}
	return category, nil
}

type Gender string

const (
	GenderMen    Gender = "MEN"
	GenderWomen  Gender = "WOMEN"
	GenderUnisex Gender = "UNISEX"
)

type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)
