package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teewear/storefront/catalog/internal/otel"
	"github.com/teewear/storefront/catalog/pkg/request"
	"github.com/teewear/storefront/catalog/pkg/response"
	"github.com/teewear/storefront/internal/log"
	inOtel "github.com/teewear/storefront/internal/otel"
	"github.com/teewear/storefront/internal/repository"
)

// ProductStore is the slice of the product repository the catalog needs.
type ProductStore interface {
	ListProducts(c context.Context, arg repository.ListProductsParams) ([]repository.Product, error)
	ListProductsByCategory(c context.Context, category repository.Category) ([]repository.Product, error)
	FindProductById(c context.Context, id uuid.UUID) (repository.Product, error)
}

type ProductService struct {
	store ProductStore
}

func NewProductService(store ProductStore) ProductService {
	return ProductService{store: store}
}

// ListProducts returns one page of active products ordered ascending by id,
// then narrows it with the request's secondary filter. A caller seeing a full
// page infers that more pages may exist; when the remaining count equals the
// page size exactly this yields a false negative, a known approximation.
func (svc ProductService) ListProducts(
	c context.Context,
	param request.ListProducts,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService ListProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService ListProducts").
		Int32("limit", param.Limit).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "listing products").Logger()
	logger.Trace().Msg("listing products from database")
	span.AddEvent("listing products from database")
	products, err := svc.store.ListProducts(c, repository.ListProductsParams{
		Limit:  param.Limit,
		Cursor: param.Cursor,
	})
	if err != nil {
		err = fmt.Errorf("failed listing products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	span.AddEvent("listed products from database")
	logger.Info().Int(log.KeyProducts, len(products)).Msg("listed products from database")

	page := make([]response.Product, 0, len(products))
	for _, product := range products {
		page = append(page, product.Response())
	}

	if param.Filter.Empty() {
		return page, nil
	}

	logger = logger.With().Str(log.KeyProcess, "filtering products").Logger()
	logger.Trace().Msg("filtering fetched page")
	filtered := FilterProducts(page, param.Filter)
	logger.Info().Int(log.KeyProducts, len(filtered)).Msg("filtered fetched page")

	return filtered, nil
}

// ListProductsByCategory returns every active product in the category. The
// category string is normalized and validated against the closed enum; an
// unknown value is a validation error, not an empty result.
func (svc ProductService) ListProductsByCategory(
	c context.Context,
	rawCategory string,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService ListProductsByCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService ListProductsByCategory").
		Str(log.KeyCategory, rawCategory).
		Logger()

	category, err := repository.ParseCategory(rawCategory)
	if err != nil {
		err = fmt.Errorf("failed parsing category=%s with error=%w", rawCategory, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "listing products by category").Logger()
	logger.Trace().Msg("listing products by category from database")
	span.AddEvent("listing products by category from database")
	products, err := svc.store.ListProductsByCategory(c, category)
	if err != nil {
		err = fmt.Errorf("failed listing products by category=%s with error=%w", category, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	span.AddEvent("listed products by category from database")
	logger.Info().Int(log.KeyProducts, len(products)).Msg("listed products by category from database")

	page := make([]response.Product, 0, len(products))
	for _, product := range products {
		page = append(page, product.Response())
	}
	return page, nil
}

// FindProductById returns the product regardless of its active flag, so the
// detail view can tell a retired product apart from a missing one.
func (svc ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product by id from database")
	span.AddEvent("finding product by id from database")
	product, err := svc.store.FindProductById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding product id=%s with error=%w", id, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("found product by id from database")
	logger.Info().Msg("found product by id from database")

	return product.Response(), nil
}
