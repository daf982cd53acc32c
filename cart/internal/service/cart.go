package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teewear/storefront/cart/internal/otel"
	"github.com/teewear/storefront/cart/pkg/request"
	"github.com/teewear/storefront/cart/pkg/response"
	inErrors "github.com/teewear/storefront/internal/errors"
	"github.com/teewear/storefront/internal/log"
	inOtel "github.com/teewear/storefront/internal/otel"
	"github.com/teewear/storefront/internal/repository"
)

// CartStore is the key-value side of the cart: per-user quantities with an
// atomic increment.
type CartStore interface {
	GetCart(c context.Context, userId uuid.UUID) (map[uuid.UUID]int64, error)
	IncrementItem(c context.Context, userId uuid.UUID, productId uuid.UUID, quantity int64) (int64, error)
	RemoveItem(c context.Context, userId uuid.UUID, productId uuid.UUID) error
	ClearCart(c context.Context, userId uuid.UUID) error
}

// ProductFinder validates that caller-supplied product ids reference real,
// active products before they enter a cart.
type ProductFinder interface {
	FindProductById(c context.Context, id uuid.UUID) (repository.Product, error)
}

type CartService struct {
	store    CartStore
	products ProductFinder
}

func NewCartService(store CartStore, products ProductFinder) CartService {
	return CartService{store: store, products: products}
}

// GetCart returns the user's cart with its derived total. An anonymous user
// or a user that never added an item gets an empty cart, never an error.
func (svc CartService) GetCart(c context.Context, userId uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService GetCart").
		Str(log.KeyUserID, userId.String()).
		Logger()

	if userId == uuid.Nil {
		logger.Trace().Msg("anonymous user has no cart")
		return response.Cart{UserId: uuid.Nil, Items: []response.CartItem{}}, nil
	}

	logger = logger.With().Str(log.KeyProcess, "getting cart").Logger()
	logger.Trace().Msg("getting cart from store")
	span.AddEvent("getting cart from store")
	items, err := svc.store.GetCart(c, userId)
	if err != nil {
		err = fmt.Errorf("failed getting cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("got cart from store")
	logger.Info().Int(log.KeyCart, len(items)).Msg("got cart from store")

	return newCart(userId, items), nil
}

// AddItem increments the product's quantity in the user's cart, creating the
// cart lazily on first add. The product id is validated against the catalog
// instead of being trusted from the caller.
func (svc CartService) AddItem(
	c context.Context,
	userId uuid.UUID,
	param request.AddItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, param.ProductId.String()).
		Int64(log.KeyQuantity, param.Quantity).
		Logger()

	if param.Quantity < 1 {
		err := fmt.Errorf("failed adding cart item with error=%w", inErrors.ErrInvalidQuantity)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "validating product").Logger()
	logger.Trace().Msg("validating product")
	span.AddEvent("validating product")
	product, err := svc.products.FindProductById(c, param.ProductId)
	if err != nil {
		err = fmt.Errorf("failed validating productId=%s with error=%w", param.ProductId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if !product.IsActive {
		err = fmt.Errorf(
			"failed validating productId=%s with error=%w",
			param.ProductId,
			inErrors.ErrProductNotFound,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("validated product")
	logger.Trace().Msg("validated product")

	logger = logger.With().Str(log.KeyProcess, "incrementing cart item").Logger()
	logger.Trace().Msg("incrementing cart item")
	span.AddEvent("incrementing cart item")
	updated, err := svc.store.IncrementItem(c, userId, param.ProductId, param.Quantity)
	if err != nil {
		err = fmt.Errorf("failed incrementing cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("incremented cart item")
	logger.Info().Int64(log.KeyQuantity, updated).Msg("incremented cart item")

	return svc.GetCart(c, userId)
}

func (svc CartService) RemoveItem(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Trace().Msg("removing cart item")
	span.AddEvent("removing cart item")
	if err := svc.store.RemoveItem(c, userId, productId); err != nil {
		err = fmt.Errorf("failed removing cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	span.AddEvent("removed cart item")
	logger.Info().Msg("removed cart item")

	return svc.GetCart(c, userId)
}

func (svc CartService) ClearCart(c context.Context, userId uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Trace().Msg("clearing cart")
	span.AddEvent("clearing cart")
	if err := svc.store.ClearCart(c, userId); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	span.AddEvent("cleared cart")
	logger.Info().Msg("cleared cart")

	return nil
}

// newCart orders the hash fields by product id so responses are stable, and
// derives totalItems at read time.
func newCart(userId uuid.UUID, items map[uuid.UUID]int64) response.Cart {
	cart := response.Cart{UserId: userId, Items: make([]response.CartItem, 0, len(items))}
	for productId, quantity := range items {
		cart.Items = append(cart.Items, response.CartItem{
			ProductId: productId,
			Quantity:  quantity,
		})
		cart.TotalItems += quantity
	}
	sort.Slice(cart.Items, func(i, j int) bool {
		return cart.Items[i].ProductId.String() < cart.Items[j].ProductId.String()
	})
	return cart
}
