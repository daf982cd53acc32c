package response

import (
	"github.com/google/uuid"
)

type CartItem struct {
	ProductId uuid.UUID `json:"productId"`
	Quantity  int64     `json:"quantity"`
}

type Cart struct {
	UserId     uuid.UUID  `json:"userId"`
	Items      []CartItem `json:"items"`
	TotalItems int64      `json:"totalItems"`
}
