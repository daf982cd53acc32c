package repository

import (
	"errors"
	"fmt"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	inErrors "github.com/teewear/storefront/internal/errors"
)

const productColumns = `id, title, description, price, image_urls, category::text, sizes::text[], gender::text, featured, is_active, created_at, updated_at`

const (
	listProductsSQL = `SELECT ` + productColumns + `
		FROM products
		WHERE is_active
		ORDER BY id ASC
		LIMIT $1`

	listProductsAfterSQL = `SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND id > $2
		ORDER BY id ASC
		LIMIT $1`

	listProductsByCategorySQL = `SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND category = $1::category
		ORDER BY id ASC`

	findProductByIdSQL = `SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	insertProductSQL = `INSERT INTO products
		(id, title, description, price, image_urls, category, sizes, gender, featured, is_active)
		VALUES ($1, $2, $3, $4, $5, $6::category, $7::size[], $8::gender, $9, $10)
		RETURNING ` + productColumns

	countProductsSQL = `SELECT count(*) FROM products`
)

type Product struct {
	ID          uuid.UUID
	Title       string
	Description string
	Price       pgtype.Numeric
	ImageUrls   []string
	Category    string
	Sizes       []string
	Gender      string
	Featured    bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

type ListProductsParams struct {
	Limit  int32
	Cursor uuid.NullUUID
}

// ListProducts returns at most Limit active products ordered ascending by id,
// restricted to id > Cursor when a cursor is present.
func (r *ProductRepository) ListProducts(
	c context.Context,
	arg ListProductsParams,
) ([]Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if arg.Cursor.Valid {
		rows, err = r.pool.Query(c, listProductsAfterSQL, arg.Limit, arg.Cursor.UUID)
	} else {
		rows, err = r.pool.Query(c, listProductsSQL, arg.Limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed listing products with error=%w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

func (r *ProductRepository) ListProductsByCategory(
	c context.Context,
	category Category,
) ([]Product, error) {
	rows, err := r.pool.Query(c, listProductsByCategorySQL, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed listing products by category=%s with error=%w", category, err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

func (r *ProductRepository) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	rows, err := r.pool.Query(c, findProductByIdSQL, id)
	if err != nil {
		return Product{}, fmt.Errorf("failed finding product id=%s with error=%w", id, err)
	}
	product, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, inErrors.ErrProductNotFound
		}
		return Product{}, fmt.Errorf("failed finding product id=%s with error=%w", id, err)
	}
	return product, nil
}

type InsertProductParams struct {
	ID          uuid.UUID
	Title       string
	Description string
	Price       pgtype.Numeric
	ImageUrls   []string
	Category    Category
	Sizes       []string
	Gender      Gender
	Featured    bool
	IsActive    bool
}

func (r *ProductRepository) InsertProduct(
	c context.Context,
	arg InsertProductParams,
) (Product, error) {
	rows, err := r.pool.Query(
		c,
		insertProductSQL,
		arg.ID,
		arg.Title,
		arg.Description,
		arg.Price,
		arg.ImageUrls,
		string(arg.Category),
		arg.Sizes,
		string(arg.Gender),
		arg.Featured,
		arg.IsActive,
	)
	if err != nil {
		return Product{}, fmt.Errorf("failed inserting product with error=%w", err)
	}
	return pgx.CollectExactlyOneRow(rows, scanProduct)
}

func (r *ProductRepository) CountProducts(c context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(c, countProductsSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed counting products with error=%w", err)
	}
	return count, nil
}

func scanProduct(row pgx.CollectableRow) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.ImageUrls,
		&p.Category,
		&p.Sizes,
		&p.Gender,
		&p.Featured,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
