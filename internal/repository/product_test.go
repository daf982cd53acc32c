package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	pgxuuid "github.com/vgarvardt/pgx-google-uuid/v5"

	inErrors "github.com/teewear/storefront/internal/errors"
)

func setupPool(t *testing.T, c context.Context) *pgxpool.Pool {
	t.Helper()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "db", "migrations", "000001_init.up.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}
	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgconfig with error: %s", err)
	}
	pgConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxuuid.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}
	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func testNumeric(t *testing.T, s string) pgtype.Numeric {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return pgtype.Numeric{
		Int:              d.Coefficient(),
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}

func insertTestProduct(
	t *testing.T,
	c context.Context,
	repo *ProductRepository,
	title string,
	category Category,
	isActive bool,
) Product {
	t.Helper()
	product, err := repo.InsertProduct(c, InsertProductParams{
		ID:          uuid.New(),
		Title:       title,
		Description: "test product",
		Price:       testNumeric(t, "24.99"),
		ImageUrls:   []string{"https://images.example.com/" + title},
		Category:    category,
		Sizes:       []string{"S", "M", "L"},
		Gender:      GenderUnisex,
		Featured:    false,
		IsActive:    isActive,
	})
	require.NoError(t, err)
	return product
}

func TestProductRepository(t *testing.T) {
	c := context.Background()
	pool := setupPool(t, c)
	repo := NewProductRepository(pool)

	active := make([]Product, 0, 5)
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		active = append(active, insertTestProduct(t, c, repo, title, CategoryCasual, true))
	}
	inactive := insertTestProduct(t, c, repo, "retired", CategoryCasual, false)
	graphic := insertTestProduct(t, c, repo, "graphic", CategoryGraphic, true)

	t.Run("listing is ordered ascending by id", func(t *testing.T) {
		products, err := repo.ListProducts(c, ListProductsParams{Limit: 100})
		require.NoError(t, err)
		require.Len(t, products, len(active)+1)
		for i := 1; i < len(products); i++ {
			assert.Less(t, products[i-1].ID.String(), products[i].ID.String())
		}
	})

	t.Run("listing excludes inactive products", func(t *testing.T) {
		products, err := repo.ListProducts(c, ListProductsParams{Limit: 100})
		require.NoError(t, err)
		for _, product := range products {
			assert.NotEqual(t, inactive.ID, product.ID)
		}
	})

	t.Run("cursor excludes its own product", func(t *testing.T) {
		first, err := repo.ListProducts(c, ListProductsParams{Limit: 3})
		require.NoError(t, err)
		require.Len(t, first, 3)

		cursor := uuid.NullUUID{UUID: first[len(first)-1].ID, Valid: true}
		second, err := repo.ListProducts(c, ListProductsParams{Limit: 3, Cursor: cursor})
		require.NoError(t, err)

		for _, product := range second {
			assert.Greater(t, product.ID.String(), cursor.UUID.String())
		}
	})

	t.Run("sequential pages cover every active product once", func(t *testing.T) {
		seen := map[uuid.UUID]struct{}{}
		cursor := uuid.NullUUID{}
		for {
			page, err := repo.ListProducts(c, ListProductsParams{Limit: 2, Cursor: cursor})
			require.NoError(t, err)
			for _, product := range page {
				_, duplicated := seen[product.ID]
				require.Falsef(t, duplicated, "product %s returned on two pages", product.ID)
				seen[product.ID] = struct{}{}
			}
			if len(page) < 2 {
				break
			}
			cursor = uuid.NullUUID{UUID: page[len(page)-1].ID, Valid: true}
		}
		assert.Len(t, seen, len(active)+1)
	})

	t.Run("listing by category returns only members", func(t *testing.T) {
		products, err := repo.ListProductsByCategory(c, CategoryGraphic)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, graphic.ID, products[0].ID)
	})

	t.Run("finding a product round trips the price", func(t *testing.T) {
		product, err := repo.FindProductById(c, active[0].ID)
		require.NoError(t, err)
		got := decimal.NewFromBigInt(product.Price.Int, product.Price.Exp)
		assert.True(t, decimal.RequireFromString("24.99").Equal(got))
	})

	t.Run("finding an unknown product yields not found", func(t *testing.T) {
		_, err := repo.FindProductById(c, uuid.New())
		assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
	})

	t.Run("count includes inactive products", func(t *testing.T) {
		count, err := repo.CountProducts(c)
		require.NoError(t, err)
		assert.EqualValues(t, len(active)+2, count)
	})
}
