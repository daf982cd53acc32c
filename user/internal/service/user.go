package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teewear/storefront/internal/config"
	"github.com/teewear/storefront/internal/constants"
	inErrors "github.com/teewear/storefront/internal/errors"
	"github.com/teewear/storefront/internal/log"
	inOtel "github.com/teewear/storefront/internal/otel"
	"github.com/teewear/storefront/internal/repository"
	"github.com/teewear/storefront/user/internal/otel"
	"github.com/teewear/storefront/user/pkg/request"
	"github.com/teewear/storefront/user/pkg/response"
)

const tokenLifetime = 30 * time.Minute

type UserStore interface {
	InsertUser(c context.Context, arg repository.InsertUserParams) (repository.User, error)
	FindUserByEmail(c context.Context, email string) (repository.User, error)
}

type UserService struct {
	store  UserStore
	config config.Application
}

func NewUserService(store UserStore, cfg config.Application) UserService {
	return UserService{store: store, config: cfg}
}

// Login checks the credential against the stored bcrypt hash and issues a
// signed token whose subject is the user id.
func (svc UserService) Login(c context.Context, param request.Login) (string, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Trace().Msg("finding user by email")
	user, err := svc.store.FindUserByEmail(c, param.Email)
	if err != nil {
		err = fmt.Errorf("failed finding user by email with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Trace().Msg("found user by email")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Trace().Msg("verifying password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password))
	if err != nil {
		inOtel.RecordError(inErrors.ErrPasswordMismatch, span)
		logger.Error().
			Err(inErrors.ErrPasswordMismatch).
			Msg(inErrors.ErrPasswordMismatch.Error())
		return "", inErrors.ErrPasswordMismatch
	}
	logger.Trace().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "signing token").Logger()
	logger.Trace().Msg("signing token")
	now := time.Now()
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{constants.AudienceUser},
			Issuer:    constants.AppUserService,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	)
	signedToken, err := token.SignedString([]byte(svc.config.SecretKey))
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("signed token")

	return signedToken, nil
}

func (svc UserService) Register(
	c context.Context,
	param request.Register,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Trace().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Trace().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting user").Logger()
	logger.Trace().Msg("inserting user to database")
	user, err := svc.store.InsertUser(c, repository.InsertUserParams{
		ID:       uuid.New(),
		Username: param.Username,
		Email:    param.Email,
		Password: string(hashed),
	})
	if err != nil {
		err = fmt.Errorf("failed inserting user to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msg("inserted user to database")

	return user.Response(), nil
}
