package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teewear/storefront/internal/config"
	"github.com/teewear/storefront/internal/constants"
	inErrors "github.com/teewear/storefront/internal/errors"
	"github.com/teewear/storefront/internal/middleware"
	"github.com/teewear/storefront/internal/repository"
	"github.com/teewear/storefront/user/pkg/request"
)

const testSecretKey = "test-secret-key"

type fakeUserStore struct {
	users map[string]repository.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]repository.User{}}
}

func (s *fakeUserStore) InsertUser(
	_ context.Context,
	arg repository.InsertUserParams,
) (repository.User, error) {
	if _, taken := s.users[arg.Email]; taken {
		return repository.User{}, inErrors.ErrEmailTaken
	}
	user := repository.User{
		ID:       arg.ID,
		Username: arg.Username,
		Email:    arg.Email,
		Password: arg.Password,
	}
	s.users[arg.Email] = user
	return user, nil
}

func (s *fakeUserStore) FindUserByEmail(
	_ context.Context,
	email string,
) (repository.User, error) {
	user, ok := s.users[email]
	if !ok {
		return repository.User{}, inErrors.ErrUserNotFound
	}
	return user, nil
}

func newTestService() (UserService, *fakeUserStore) {
	store := newFakeUserStore()
	return NewUserService(store, config.Application{SecretKey: testSecretKey}), store
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, store := newTestService()

	user, err := svc.Register(context.Background(), request.Register{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "hunter22hunter22", store.users["alice@example.com"].Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), request.Register{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), request.Register{
		Username: "impostor",
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
	})
	assert.ErrorIs(t, err, inErrors.ErrEmailTaken)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService()

	registered, err := svc.Register(context.Background(), request.Register{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
	})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), request.Login{
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userId, err := middleware.VerifyToken(context.Background(), token, testSecretKey)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userId)
}

func TestLoginTokenClaims(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), request.Register{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
	})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), request.Login{
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
	})
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecretKey), nil
	})
	require.NoError(t, err)
	assert.Equal(t, constants.AppUserService, claims.Issuer)
	assert.Contains(t, claims.Audience, constants.AudienceUser)
	_, err = uuid.Parse(claims.Subject)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), request.Register{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), request.Login{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, inErrors.ErrPasswordMismatch)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), request.Login{
		Email:    "nobody@example.com",
		Password: "hunter22hunter22",
	})
	assert.ErrorIs(t, err, inErrors.ErrUserNotFound)
}
