package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teewear/storefront/internal/constants"
)

const testSecretKey = "test-secret-key"

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testSecretKey))
	require.NoError(t, err)
	return token
}

func validClaims(userId uuid.UUID) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Audience:  jwt.ClaimStrings{constants.AudienceUser},
		Issuer:    constants.AppUserService,
		Subject:   userId.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
}

func TestVerifyToken(t *testing.T) {
	userId := uuid.New()

	parsed, err := VerifyToken(
		context.Background(),
		signedToken(t, validClaims(userId)),
		testSecretKey,
	)

	require.NoError(t, err)
	assert.Equal(t, userId, parsed)
}

func TestVerifyTokenRejections(t *testing.T) {
	userId := uuid.New()

	expired := validClaims(userId)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := validClaims(userId)
	wrongIssuer.Issuer = "somebody-else"

	wrongAudience := validClaims(userId)
	wrongAudience.Audience = jwt.ClaimStrings{"audience-admin"}

	missingExpiry := validClaims(userId)
	missingExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{name: "given expired token should reject", token: signedToken(t, expired)},
		{name: "given wrong issuer should reject", token: signedToken(t, wrongIssuer)},
		{name: "given wrong audience should reject", token: signedToken(t, wrongAudience)},
		{name: "given token without expiry should reject", token: signedToken(t, missingExpiry)},
		{name: "given garbage token should reject", token: "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyToken(context.Background(), tt.token, testSecretKey)
			assert.Error(t, err)
		})
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token := signedToken(t, validClaims(uuid.New()))

	_, err := VerifyToken(context.Background(), token, "other-secret")

	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	userId := uuid.New()
	var seenUserId uuid.UUID
	handler := Auth(testSecretKey)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenUserId = UserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	)

	t.Run("given bearer token should pass user id to handler", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/carts", nil)
		request.Header.Set("Authorization", "Bearer "+signedToken(t, validClaims(userId)))
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, userId, seenUserId)
	})

	t.Run("given no authorization header should reject", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/carts", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("given invalid token should reject", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/carts", nil)
		request.Header.Set("Authorization", "Bearer not-a-token")
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestUserIDFromContextUnauthenticated(t *testing.T) {
	assert.Equal(t, uuid.Nil, UserIDFromContext(context.Background()))
}
