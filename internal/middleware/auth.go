package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teewear/storefront/internal/constants"
	inErrors "github.com/teewear/storefront/internal/errors"
	inHttp "github.com/teewear/storefront/internal/http"
	"github.com/teewear/storefront/internal/log"
)

type userIdKey struct{}

// UserIDFromContext returns the authenticated user id set by Auth, or
// uuid.Nil when the request was not authenticated.
func UserIDFromContext(c context.Context) uuid.UUID {
	id, _ := c.Value(userIdKey{}).(uuid.UUID)
	return id
}

func attachUserIDToContext(c context.Context, id uuid.UUID) context.Context {
	return context.WithValue(c, userIdKey{}, id)
}

// Auth verifies the bearer token issued by the user service and attaches the
// subject user id to the request context. The signing secret is passed in
// explicitly rather than read from a package-level config.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware Auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				logger.Error().Err(inErrors.ErrEmptyAuth).Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			token := strings.TrimPrefix(authorization, "Bearer ")
			token = strings.TrimPrefix(token, "bearer ")
			userId, err := VerifyToken(c, token, secretKey)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			c = attachUserIDToContext(c, userId)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

func VerifyToken(c context.Context, token string, secretKey string) (uuid.UUID, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "middleware VerifyToken").
		Logger()

	claims := jwt.RegisteredClaims{}
	jwtToken, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithAudience(constants.AudienceUser),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.AppUserService),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing token claims with error=%w", err)
	}
	if !jwtToken.Valid {
		return uuid.Nil, inErrors.ErrTokenInvalid
	}

	userId, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing token subject with error=%w", err)
	}

	logger.Trace().Str(log.KeyUserID, userId.String()).Msg("verified token")
	return userId, nil
}
