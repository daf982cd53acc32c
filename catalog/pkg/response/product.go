package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageUrls   []string        `json:"imageUrls"`
	Category    string          `json:"category"`
	Sizes       []string        `json:"sizes"`
	Gender      string          `json:"gender"`
	Featured    bool            `json:"featured"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Thumbnail returns the primary image reference or "" for products seeded
// without images.
func (p Product) Thumbnail() string {
	if len(p.ImageUrls) == 0 {
		return ""
	}
	return p.ImageUrls[0]
}
