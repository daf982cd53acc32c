package request

import (
	"github.com/google/uuid"
)

type AddItem struct {
	ProductId uuid.UUID `validate:"required" json:"productId"`
	Quantity  int64     `validate:"gte=1"    json:"quantity"`
}
