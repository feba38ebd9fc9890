package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/application/user/dto"
	"garage/internal/application/user/usecases"
	"garage/internal/interfaces/http/handlers/testutil"
	"garage/internal/shared/authorization"
	"garage/internal/shared/errors"
)

type mockLoginUC struct {
	cmd    usecases.LoginCommand
	result *dto.LoginResponse
	err    error
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd usecases.LoginCommand) (*dto.LoginResponse, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetCurrentUserUC struct {
	userID uint
	result *dto.UserDTO
	err    error
}

func (m *mockGetCurrentUserUC) Execute(ctx context.Context, userID uint) (*dto.UserDTO, error) {
	m.userID = userID
	return m.result, m.err
}

type mockCreateUserUC struct {
	cmd    usecases.CreateUserCommand
	result *dto.UserDTO
	err    error
}

func (m *mockCreateUserUC) Execute(ctx context.Context, cmd usecases.CreateUserCommand) (*dto.UserDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

func sampleUserDTO() *dto.UserDTO {
	return &dto.UserDTO{ID: 7, Name: "Ana", Email: "ana@garage.local", Role: "attendant", Active: true}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		login := &mockLoginUC{result: &dto.LoginResponse{
			AccessToken: "jwt",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
			ExpiresAt:   time.Now().Add(time.Hour),
			User:        *sampleUserDTO(),
		}}
		h := NewAuthHandler(login, &mockGetCurrentUserUC{}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/login", map[string]any{
			"email": "ana@garage.local", "password": "secret-pass",
		})
		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ana@garage.local", login.cmd.Email)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var data dto.LoginResponse
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "jwt", data.AccessToken)
		assert.Equal(t, "Bearer", data.TokenType)
	})

	t.Run("invalid email", func(t *testing.T) {
		h := NewAuthHandler(&mockLoginUC{}, &mockGetCurrentUserUC{}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/login", map[string]any{
			"email": "not-an-email", "password": "x",
		})
		h.Login(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Contains(t, resp.Errors, "email")
	})

	t.Run("wrong credentials", func(t *testing.T) {
		login := &mockLoginUC{err: errors.NewUnauthorizedError("Invalid email or password")}
		h := NewAuthHandler(login, &mockGetCurrentUserUC{}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/login", map[string]any{
			"email": "ana@garage.local", "password": "wrong-pass",
		})
		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		me := &mockGetCurrentUserUC{result: sampleUserDTO()}
		h := NewAuthHandler(&mockLoginUC{}, me, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/auth/me", nil)
		testutil.SetAuthContext(c, 7, authorization.RoleAttendant, nil)
		h.GetCurrentUser(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(7), me.userID)
	})

	t.Run("anonymous", func(t *testing.T) {
		h := NewAuthHandler(&mockLoginUC{}, &mockGetCurrentUserUC{}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/auth/me", nil)
		h.GetCurrentUser(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		create := &mockCreateUserUC{result: sampleUserDTO()}
		h := NewUserHandler(create, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/users", map[string]any{
			"name": "Ana", "email": "ana@garage.local", "password": "long-enough",
			"role": "attendant", "service_center_id": 3,
		})
		h.CreateUser(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "attendant", create.cmd.Role)
		assert.Equal(t, uint(3), *create.cmd.ServiceCenterID)
	})

	t.Run("unknown role", func(t *testing.T) {
		h := NewUserHandler(&mockCreateUserUC{}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/users", map[string]any{
			"name": "Ana", "email": "ana@garage.local", "password": "long-enough", "role": "owner",
		})
		h.CreateUser(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Contains(t, resp.Errors, "role")
	})

	t.Run("duplicate email", func(t *testing.T) {
		create := &mockCreateUserUC{err: errors.NewFieldValidationError("email", "The email has already been taken.")}
		h := NewUserHandler(create, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/users", map[string]any{
			"name": "Ana", "email": "ana@garage.local", "password": "long-enough", "role": "admin",
		})
		h.CreateUser(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Equal(t, []string{"The email has already been taken."}, resp.Errors["email"])
	})
}
