package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/teewear/storefront/cart/internal/otel"
	"github.com/teewear/storefront/cart/internal/service"
	"github.com/teewear/storefront/cart/pkg/request"
	inErrors "github.com/teewear/storefront/internal/errors"
	inHttp "github.com/teewear/storefront/internal/http"
	"github.com/teewear/storefront/internal/log"
	"github.com/teewear/storefront/internal/middleware"
	inOtel "github.com/teewear/storefront/internal/otel"
)

type CartController struct {
	service service.CartService
}

func AttachCartController(router *mux.Router, svc service.CartService, secretKey string) {
	controller := CartController{service: svc}

	subrouter := router.PathPrefix("/api/carts").Subrouter()
	subrouter.Use(middleware.Auth(secretKey))
	subrouter.HandleFunc("", controller.GetCart).Methods(http.MethodGet)
	subrouter.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	subrouter.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	subrouter.HandleFunc("/items/{productId}", controller.RemoveItem).Methods(http.MethodDelete)
}

func (ctrl CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController GetCart")
	defer span.End()

	userId := middleware.UserIDFromContext(c)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController GetCart").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting cart").Logger()
	logger.Trace().Msg("getting cart")
	span.AddEvent("getting cart")
	c = logger.WithContext(c)
	cart, err := ctrl.service.GetCart(c, userId)
	if err != nil {
		err = fmt.Errorf("failed getting cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    "failed to fetch cart",
		})
		return
	}
	span.AddEvent("got cart")
	logger.Info().Int64(log.KeyQuantity, cart.TotalItems).Msg("got cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart found",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (ctrl CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	userId := middleware.UserIDFromContext(c)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddItem").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	span.AddEvent("decoding request body")
	reqBody := request.AddItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	if reqBody.Quantity == 0 {
		reqBody.Quantity = 1
	}
	span.AddEvent("decoded request body")
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	span.AddEvent("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	span.AddEvent("validated request body")
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "adding cart item").Logger()
	logger.Trace().Msg("adding cart item")
	span.AddEvent("adding cart item")
	c = logger.WithContext(c)
	cart, err := ctrl.service.AddItem(c, userId, reqBody)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrProductNotFound) ||
			errors.Is(err, inErrors.ErrInvalidQuantity) {
			statusCode = http.StatusBadRequest
		}
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	span.AddEvent("added cart item")
	logger.Info().Int64(log.KeyQuantity, cart.TotalItems).Msg("added cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully added cart item",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (ctrl CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	userId := middleware.UserIDFromContext(c)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveItem").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing productId").Logger()
	logger.Trace().Msg("parsing path value productId")
	productId, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		err = fmt.Errorf("failed parsing path value productId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()
	logger.Trace().Msg("parsed path value productId")

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Trace().Msg("removing cart item")
	span.AddEvent("removing cart item")
	c = logger.WithContext(c)
	cart, err := ctrl.service.RemoveItem(c, userId, productId)
	if err != nil {
		err = fmt.Errorf("failed removing cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	span.AddEvent("removed cart item")
	logger.Info().Msg("removed cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully removed cart item",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (ctrl CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	userId := middleware.UserIDFromContext(c)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ClearCart").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Trace().Msg("clearing cart")
	span.AddEvent("clearing cart")
	c = logger.WithContext(c)
	if err := ctrl.service.ClearCart(c, userId); err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	span.AddEvent("cleared cart")
	logger.Info().Msg("cleared cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "successfully cleared cart",
	})
}
