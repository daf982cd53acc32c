package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teewear/storefront/internal/config"
	inErrors "github.com/teewear/storefront/internal/errors"
	"github.com/teewear/storefront/internal/repository"
	"github.com/teewear/storefront/user/internal/service"
)

type memoryUserStore struct {
	users map[string]repository.User
}

func (s *memoryUserStore) InsertUser(
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

func (s *memoryUserStore) FindUserByEmail(
	_ context.Context,
	email string,
) (repository.User, error) {
	user, ok := s.users[email]
	if !ok {
		return repository.User{}, inErrors.ErrUserNotFound
	}
	return user, nil
}

func newUserRouter() *mux.Router {
	store := &memoryUserStore{users: map[string]repository.User{}}
	svc := service.NewUserService(store, config.Application{SecretKey: "test-secret-key"})
	router := mux.NewRouter()
	router.StrictSlash(true)
	AttachUserController(router, svc)
	return router
}

func postJson(t *testing.T, router *mux.Router, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return recorder
}

func TestRegisterEndpoint(t *testing.T) {
	router := newUserRouter()

	recorder := postJson(t, router, "/api/users/register",
		`{"username":"alice","email":"alice@example.com","password":"hunter22hunter22"}`)

	require.Equal(t, http.StatusCreated, recorder.Code)
	envelope := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "success", envelope["status"])
}

func TestRegisterEndpointValidation(t *testing.T) {
	router := newUserRouter()

	tests := []struct {
		name string
		body string
	}{
		{name: "given malformed email should reject", body: `{"username":"alice","email":"not-an-email","password":"hunter22hunter22"}`},
		{name: "given short password should reject", body: `{"username":"alice","email":"alice@example.com","password":"short"}`},
		{name: "given missing username should reject", body: `{"email":"alice@example.com","password":"hunter22hunter22"}`},
		{name: "given malformed json should reject", body: `{"username":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJson(t, router, "/api/users/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	router := newUserRouter()
	body := `{"username":"alice","email":"alice@example.com","password":"hunter22hunter22"}`

	recorder := postJson(t, router, "/api/users/register", body)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = postJson(t, router, "/api/users/register", body)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router := newUserRouter()

	recorder := postJson(t, router, "/api/users/register",
		`{"username":"alice","email":"alice@example.com","password":"hunter22hunter22"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = postJson(t, router, "/api/users/login",
		`{"email":"alice@example.com","password":"hunter22hunter22"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	envelope := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	router := newUserRouter()

	recorder := postJson(t, router, "/api/users/register",
		`{"username":"alice","email":"alice@example.com","password":"hunter22hunter22"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	tests := []struct {
		name string
		body string
	}{
		{name: "given wrong password should not reveal which field failed", body: `{"email":"alice@example.com","password":"wrong-password"}`},
		{name: "given unknown email should not reveal which field failed", body: `{"email":"nobody@example.com","password":"hunter22hunter22"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJson(t, router, "/api/users/login", tt.body)
			require.Equal(t, http.StatusUnauthorized, recorder.Code)
			envelope := map[string]interface{}{}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, "invalid email or password", envelope["message"])
		})
	}
}
