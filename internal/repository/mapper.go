package repository

import (
	"github.com/shopspring/decimal"

	productResponse "github.com/teewear/storefront/catalog/pkg/response"
	userResponse "github.com/teewear/storefront/user/pkg/response"
)

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       decimal.NewFromBigInt(p.Price.Int, p.Price.Exp),
		ImageUrls:   p.ImageUrls,
		Category:    p.Category,
		Sizes:       p.Sizes,
		Gender:      p.Gender,
		Featured:    p.Featured,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
