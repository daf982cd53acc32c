package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teewear/storefront/catalog/pkg/request"
	inErrors "github.com/teewear/storefront/internal/errors"
	"github.com/teewear/storefront/internal/repository"
)

// fakeProductStore serves pages from an in-memory slice kept sorted by id,
// mirroring the id-ordered keyset pagination of the real store.
type fakeProductStore struct {
	products []repository.Product
	err      error
}

func newFakeProductStore(products ...repository.Product) *fakeProductStore {
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID.String() < products[j].ID.String()
	})
	return &fakeProductStore{products: products}
}

func (s *fakeProductStore) ListProducts(
	_ context.Context,
	arg repository.ListProductsParams,
) ([]repository.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	page := make([]repository.Product, 0, arg.Limit)
	for _, product := range s.products {
		if arg.Cursor.Valid && product.ID.String() <= arg.Cursor.UUID.String() {
			continue
		}
		page = append(page, product)
		if int32(len(page)) == arg.Limit {
			break
		}
	}
	return page, nil
}

func (s *fakeProductStore) ListProductsByCategory(
	_ context.Context,
	category repository.Category,
) ([]repository.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	matched := []repository.Product{}
	for _, product := range s.products {
		if product.Category == string(category) {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

func (s *fakeProductStore) FindProductById(
	_ context.Context,
	id uuid.UUID,
) (repository.Product, error) {
	if s.err != nil {
		return repository.Product{}, s.err
	}
	for _, product := range s.products {
		if product.ID == id {
			return product, nil
		}
	}
	return repository.Product{}, inErrors.ErrProductNotFound
}

func numeric(s string) pgtype.Numeric {
	d := decimal.RequireFromString(s)
	return pgtype.Numeric{
		Int:              d.Coefficient(),
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}

func newProduct(title string, category repository.Category, priceStr string) repository.Product {
	return repository.Product{
		ID:       uuid.New(),
		Title:    title,
		Price:    numeric(priceStr),
		Category: string(category),
		IsActive: true,
	}
}

func TestListProductsPageSize(t *testing.T) {
	store := newFakeProductStore(
		newProduct("a", repository.CategoryCasual, "10"),
		newProduct("b", repository.CategoryCasual, "20"),
		newProduct("c", repository.CategoryCasual, "30"),
	)
	svc := NewProductService(store)

	tests := []struct {
		name     string
		limit    int32
		expected int
	}{
		{name: "given limit smaller than stock should return limit products", limit: 2, expected: 2},
		{name: "given limit equal to stock should return every product", limit: 3, expected: 3},
		{name: "given limit above stock should return remaining products", limit: 20, expected: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.ListProducts(
				context.Background(),
				request.ListProducts{Limit: tt.limit},
			)
			require.NoError(t, err)
			assert.Len(t, page, tt.expected)
		})
	}
}

func TestListProductsSequentialPages(t *testing.T) {
	products := make([]repository.Product, 0, 5)
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		products = append(products, newProduct(title, repository.CategoryCasual, "19.99"))
	}
	store := newFakeProductStore(products...)
	svc := NewProductService(store)

	seen := map[uuid.UUID]struct{}{}
	cursor := uuid.NullUUID{}
	for {
		page, err := svc.ListProducts(
			context.Background(),
			request.ListProducts{Limit: 2, Cursor: cursor},
		)
		require.NoError(t, err)
		for _, product := range page {
			_, duplicated := seen[product.ID]
			assert.Falsef(t, duplicated, "product %s returned on two pages", product.ID)
			seen[product.ID] = struct{}{}
		}
		if len(page) < 2 {
			break
		}
		cursor = uuid.NullUUID{UUID: page[len(page)-1].ID, Valid: true}
	}

	assert.Len(t, seen, len(products))
}

func TestListProductsSecondaryFilter(t *testing.T) {
	cheap := newProduct("cheap tee", repository.CategoryCasual, "20")
	pricey := newProduct("pricey tee", repository.CategoryCasual, "60")
	mid := newProduct("mid tee", repository.CategoryCasual, "40")
	store := newFakeProductStore(cheap, pricey, mid)
	svc := NewProductService(store)

	page, err := svc.ListProducts(context.Background(), request.ListProducts{
		Limit: request.DefaultPageSize,
		Filter: request.ProductFilter{
			MinPrice: decimal.NullDecimal{Decimal: decimal.NewFromInt(30), Valid: true},
			MaxPrice: decimal.NullDecimal{Decimal: decimal.NewFromInt(100), Valid: true},
		},
	})

	require.NoError(t, err)
	titles := make([]string, 0, len(page))
	for _, product := range page {
		titles = append(titles, product.Title)
	}
	assert.NotContains(t, titles, "cheap tee")
	assert.ElementsMatch(t, []string{"pricey tee", "mid tee"}, titles)
}

func TestListProductsStoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewProductService(&fakeProductStore{err: storeErr})

	page, err := svc.ListProducts(
		context.Background(),
		request.ListProducts{Limit: request.DefaultPageSize},
	)

	assert.Nil(t, page)
	assert.ErrorIs(t, err, storeErr)
}

func TestListProductsByCategory(t *testing.T) {
	casual := newProduct("casual tee", repository.CategoryCasual, "24.99")
	graphic := newProduct("graphic tee", repository.CategoryGraphic, "29.99")
	store := newFakeProductStore(casual, graphic)
	svc := NewProductService(store)

	tests := []struct {
		name     string
		category string
		expected []string
	}{
		{name: "given uppercase category should return members", category: "GRAPHIC", expected: []string{"graphic tee"}},
		{name: "given lowercase category should normalize before matching", category: "graphic", expected: []string{"graphic tee"}},
		{name: "given padded category should trim before matching", category: " casual ", expected: []string{"casual tee"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.ListProductsByCategory(context.Background(), tt.category)
			require.NoError(t, err)
			titles := make([]string, 0, len(page))
			for _, product := range page {
				titles = append(titles, product.Title)
			}
			assert.Equal(t, tt.expected, titles)
		})
	}
}

func TestListProductsByUnknownCategory(t *testing.T) {
	svc := NewProductService(newFakeProductStore())

	page, err := svc.ListProductsByCategory(context.Background(), "FORMAL")

	assert.Nil(t, page)
	assert.ErrorIs(t, err, inErrors.ErrInvalidCategory)
}

func TestFindProductById(t *testing.T) {
	tee := newProduct("detail tee", repository.CategoryGraphic, "29.99")
	store := newFakeProductStore(tee, newProduct("other tee", repository.CategoryCasual, "19.99"))
	svc := NewProductService(store)

	product, err := svc.FindProductById(context.Background(), tee.ID)

	require.NoError(t, err)
	assert.Equal(t, tee.ID, product.ID)
	assert.Equal(t, "detail tee", product.Title)
	assert.True(t, decimal.RequireFromString("29.99").Equal(product.Price))
}

func TestFindProductByIdRetired(t *testing.T) {
	retired := newProduct("retired tee", repository.CategoryCasual, "14.99")
	retired.IsActive = false
	svc := NewProductService(newFakeProductStore(retired))

	product, err := svc.FindProductById(context.Background(), retired.ID)

	require.NoError(t, err)
	assert.Equal(t, retired.ID, product.ID)
}

func TestFindProductByIdUnknown(t *testing.T) {
	svc := NewProductService(newFakeProductStore())

	_, err := svc.FindProductById(context.Background(), uuid.New())

	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestListProductsMapsPrice(t *testing.T) {
	store := newFakeProductStore(newProduct("tee", repository.CategoryCasual, "24.99"))
	svc := NewProductService(store)

	page, err := svc.ListProducts(
		context.Background(),
		request.ListProducts{Limit: request.DefaultPageSize},
	)

	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.True(t, decimal.RequireFromString("24.99").Equal(page[0].Price))
}
