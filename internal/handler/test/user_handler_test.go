package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"chirp/internal/models"
	"chirp/internal/repository"
)

// authenticated притворяется AuthMiddleware: кладет userID и роль в контекст
func authenticated(req *http.Request, userID, role string) *http.Request {
	ctx := req.Context()
	ctx = context.WithValue(ctx, "userID", userID)
	ctx = context.WithValue(ctx, "role", role)
	return req.WithContext(ctx)
}

func withVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

func TestGetUsers(t *testing.T) {
	// Arrange
	h, m := newTestHandlers()

	m.user.On("ListUsers", mock.Anything,
		repository.UserFilter{Name: "john", Role: models.RoleUser},
		repository.ListParams{Page: 2, Limit: 5},
	).Return(&repository.ListResult{
		Results:      []models.User{{UserID: "user-1"}, {UserID: "user-2"}},
		Page:         2,
		Limit:        5,
		TotalPages:   3,
		TotalResults: 11,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users?name=john&role=user&page=2&limit=5", nil)
	rec := httptest.NewRecorder()

	// Act
	h.GetUsers(rec, authenticated(req, "admin-1", models.RoleAdmin))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, float64(2), resp["page"])
	assert.Equal(t, float64(5), resp["limit"])
	assert.Equal(t, float64(3), resp["totalPages"])
	assert.Equal(t, float64(11), resp["totalResults"])

	results, ok := resp["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 2)
}

func TestGetUser(t *testing.T) {
	t.Run("Пользователь найден", func(t *testing.T) {
		// Arrange
		h, m := newTestHandlers()

		m.user.On("GetUser", mock.Anything, "user-123").
			Return(&models.User{UserID: "user-123", Username: "johnd"}, nil)

		req := withVars(httptest.NewRequest(http.MethodGet, "/api/users/user-123", nil),
			map[string]string{"id": "user-123"})
		rec := httptest.NewRecorder()

		// Act
		h.GetUser(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		user, ok := resp["user"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "johnd", user["username"])
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		// Arrange
		h, m := newTestHandlers()

		m.user.On("GetUser", mock.Anything, "missing").
			Return(nil, repository.ErrNotFound)

		req := withVars(httptest.NewRequest(http.MethodGet, "/api/users/missing", nil),
			map[string]string{"id": "missing"})
		rec := httptest.NewRecorder()

		// Act
		h.GetUser(rec, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetCurrentUser(t *testing.T) {
	t.Run("Текущий пользователь из токена", func(t *testing.T) {
		// Arrange
		h, m := newTestHandlers()

		m.repo.On("GetUserByID", mock.Anything, "user-123").
			Return(&models.User{UserID: "user-123", Username: "johnd"}, nil)

		req := authenticated(httptest.NewRequest(http.MethodGet, "/api/me", nil), "user-123", models.RoleUser)
		rec := httptest.NewRecorder()

		// Act
		h.GetCurrentUser(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Без аутентификации", func(t *testing.T) {
		// Arrange
		h, _ := newTestHandlers()
		rec := httptest.NewRecorder()

		// Act
		h.GetCurrentUser(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("Администратор создает пользователя с ролью", func(t *testing.T) {
		// Arrange
		h, m := newTestHandlers()

		created := &models.User{UserID: "user-9", Username: "moderator", Role: models.RoleAdmin}
		m.user.On("CreateUser", mock.Anything, mock.MatchedBy(func(req repository.CreateUserRequest) bool {
			return req.Role == models.RoleAdmin
		})).Return(created, nil)

		body := map[string]string{
			"name":            "Moderator",
			"email":           "mod@example.com",
			"username":        "moderator",
			"password":        "password123",
			"repeat_password": "password123",
			"role":            "admin",
		}
		rec := httptest.NewRecorder()

		// Act
		h.CreateUser(rec, authenticated(jsonRequest(t, http.MethodPost, "/api/users", body), "admin-1", models.RoleAdmin))

		// Assert
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Недопустимая роль", func(t *testing.T) {
		// Arrange
		h, m := newTestHandlers()

		body := map[string]string{
			"name":            "Moderator",
			"email":           "mod@example.com",
			"username":        "moderator",
			"password":        "password123",
			"repeat_password": "password123",
			"role":            "superadmin",
		}
		rec := httptest.NewRecorder()

		// Act
		h.CreateUser(rec, authenticated(jsonRequest(t, http.MethodPost, "/api/users", body), "admin-1", models.RoleAdmin))

		// Assert
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorFields(decodeErrors(t, rec)), "role")
		m.user.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Пользователь обновляет себя", func(t *testing.T) {
		// Arrange
		h, m := newTestHandlers()

		m.user.On("UpdateUser", mock.Anything, repository.UpdateUserRequest{
			UserID: "user-123",
			Name:   "New Name",
			Email:  "new@example.com",
		}).Return(nil)

		body := map[string]string{"name": "New Name", "email": "new@example.com"}
		req := withVars(authenticated(jsonRequest(t, http.MethodPut, "/api/users/user-123", body), "user-123", models.RoleUser),
			map[string]string{"id": "user-123"})
		rec := httptest.NewRecorder()

		// Act
		h.UpdateUser(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Чужой профиль обновить нельзя", func(t *testing.T) {
		// Arrange
		h, m := newTestHandlers()

		body := map[string]string{"name": "New Name", "email": "new@example.com"}
		req := withVars(authenticated(jsonRequest(t, http.MethodPut, "/api/users/user-456", body), "user-123", models.RoleUser),
			map[string]string{"id": "user-456"})
		rec := httptest.NewRecorder()

		// Act
		h.UpdateUser(rec, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rec.Code)
		m.user.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Администратор удаляет чужой аккаунт", func(t *testing.T) {
		// Arrange
		h, m := newTestHandlers()
		m.user.On("DeleteUser", mock.Anything, "user-456").Return(nil)

		req := withVars(authenticated(httptest.NewRequest(http.MethodDelete, "/api/users/user-456", nil), "admin-1", models.RoleAdmin),
			map[string]string{"id": "user-456"})
		rec := httptest.NewRecorder()

		// Act
		h.DeleteUser(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Обычный пользователь не может удалить чужой аккаунт", func(t *testing.T) {
		// Arrange
		h, m := newTestHandlers()

		req := withVars(authenticated(httptest.NewRequest(http.MethodDelete, "/api/users/user-456", nil), "user-123", models.RoleUser),
			map[string]string{"id": "user-456"})
		rec := httptest.NewRecorder()

		// Act
		h.DeleteUser(rec, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rec.Code)
		m.user.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})

	t.Run("Несуществующий пользователь", func(t *testing.T) {
		// Arrange
		h, m := newTestHandlers()
		m.user.On("DeleteUser", mock.Anything, "missing").Return(repository.ErrNotFound)

		req := withVars(authenticated(httptest.NewRequest(http.MethodDelete, "/api/users/missing", nil), "admin-1", models.RoleAdmin),
			map[string]string{"id": "missing"})
		rec := httptest.NewRecorder()

		// Act
		h.DeleteUser(rec, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
