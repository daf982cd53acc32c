package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/teewear/storefront/catalog/internal/otel"
	"github.com/teewear/storefront/catalog/internal/service"
	"github.com/teewear/storefront/catalog/pkg/request"
	inErrors "github.com/teewear/storefront/internal/errors"
	inHttp "github.com/teewear/storefront/internal/http"
	"github.com/teewear/storefront/internal/log"
	inOtel "github.com/teewear/storefront/internal/otel"
	"github.com/teewear/storefront/internal/repository"
)

const (
	// listFailureMessage is the fixed error body for store failures at the
	// listing endpoints.
	listFailureMessage = "Failed to fetch products"

	detailFailureMessage = "Failed to fetch product"
)

type ProductController struct {
	service service.ProductService
}

func AttachProductController(router *mux.Router, svc service.ProductService) {
	controller := ProductController{service: svc}

	subrouter := router.PathPrefix("/api/products").Subrouter()
	subrouter.HandleFunc("", controller.ListProducts).Methods(http.MethodGet)
	// A uuid-shaped segment is a product detail request; anything else in
	// that slot is a category name.
	subrouter.HandleFunc("/{productId:[0-9a-fA-F-]{36}}", controller.FindProductById).
		Methods(http.MethodGet)
	subrouter.HandleFunc("/{category}", controller.ListProductsByCategory).Methods(http.MethodGet)
}

func (ctrl ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController ListProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController ListProducts").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing query params").Logger()
	logger.Trace().Msg("parsing query params")
	param, err := parseListProducts(r)
	if err != nil {
		err = fmt.Errorf("failed parsing query params with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJson(c, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	logger.Trace().Msg("parsed query params")

	logger = logger.With().Str(log.KeyProcess, "validating query params").Logger()
	logger.Trace().Msg("validating query params")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating query params with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJson(c, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	logger.Trace().Msg("validated query params")

	logger = logger.With().Str(log.KeyProcess, "listing products").Logger()
	logger.Trace().Msg("listing products")
	span.AddEvent("listing products")
	c = logger.WithContext(c)
	products, err := ctrl.service.ListProducts(c, param)
	if err != nil {
		err = fmt.Errorf("failed listing products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJson(c, w, http.StatusInternalServerError, map[string]string{"error": listFailureMessage})
		return
	}
	span.AddEvent("listed products")
	logger.Info().Int(log.KeyProducts, len(products)).Msg("listed products")

	inHttp.WriteJson(c, w, http.StatusOK, products)
}

func (ctrl ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	rawId := mux.Vars(r)["productId"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductById").
		Str(log.KeyProductID, rawId).
		Logger()

	id, err := uuid.Parse(rawId)
	if err != nil {
		err = fmt.Errorf("invalid productId=%s with error=%w", rawId, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJson(c, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product")
	span.AddEvent("finding product")
	c = logger.WithContext(c)
	product, err := ctrl.service.FindProductById(c, id)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if errors.Is(err, inErrors.ErrProductNotFound) {
			inHttp.WriteJson(c, w, http.StatusNotFound, map[string]string{"error": inErrors.ErrProductNotFound.Error()})
			return
		}
		inHttp.WriteJson(c, w, http.StatusInternalServerError, map[string]string{"error": detailFailureMessage})
		return
	}
	span.AddEvent("found product")
	logger.Info().Msg("found product")

	inHttp.WriteJson(c, w, http.StatusOK, product)
}

func (ctrl ProductController) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController ListProductsByCategory")
	defer span.End()

	category := mux.Vars(r)["category"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController ListProductsByCategory").
		Str(log.KeyCategory, category).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "listing products by category").Logger()
	logger.Trace().Msg("listing products by category")
	span.AddEvent("listing products by category")
	c = logger.WithContext(c)
	products, err := ctrl.service.ListProductsByCategory(c, category)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if errors.Is(err, inErrors.ErrInvalidCategory) {
			inHttp.WriteJson(c, w, http.StatusBadRequest, map[string]string{"error": inErrors.ErrInvalidCategory.Error()})
			return
		}
		inHttp.WriteJson(c, w, http.StatusInternalServerError, map[string]string{"error": listFailureMessage})
		return
	}
	span.AddEvent("listed products by category")
	logger.Info().Int(log.KeyProducts, len(products)).Msg("listed products by category")

	inHttp.WriteJson(c, w, http.StatusOK, products)
}

func parseListProducts(r *http.Request) (request.ListProducts, error) {
	query := r.URL.Query()

	param := request.ListProducts{Limit: request.DefaultPageSize}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		param.Limit = int32(limit)
	}

	if cursor := query.Get("cursor"); cursor != "" {
		id, err := uuid.Parse(cursor)
		if err != nil {
			return request.ListProducts{}, fmt.Errorf("invalid cursor=%s with error=%w", cursor, err)
		}
		param.Cursor = uuid.NullUUID{UUID: id, Valid: true}
	}

	if raw := query.Get("categories"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			category, err := repository.ParseCategory(s)
			if err != nil {
				return request.ListProducts{}, fmt.Errorf("invalid category=%s with error=%w", s, err)
			}
			param.Filter.Categories = append(param.Filter.Categories, category)
		}
	}
	if raw := query.Get("min_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return request.ListProducts{}, fmt.Errorf("invalid min_price=%s with error=%w", raw, err)
		}
		param.Filter.MinPrice = decimal.NullDecimal{Decimal: price, Valid: true}
	}
	if raw := query.Get("max_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return request.ListProducts{}, fmt.Errorf("invalid max_price=%s with error=%w", raw, err)
		}
		param.Filter.MaxPrice = decimal.NullDecimal{Decimal: price, Valid: true}
	}
	param.Filter.Search = query.Get("q")

	return param, nil
}
