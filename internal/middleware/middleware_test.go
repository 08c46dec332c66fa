package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"chirp/internal/config"
	"chirp/internal/models"
	"chirp/internal/token"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecretKey: "test-secret-key"}
}

// nextRecorder запоминает, дошел ли запрос до обработчика, и его контекст
type nextRecorder struct {
	called bool
	userID string
	role   string
}

func (n *nextRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.called = true
		n.userID, _ = r.Context().Value("userID").(string)
		n.role, _ = r.Context().Value("role").(string)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()

	t.Run("Валидный токен пропускается, контекст заполняется", func(t *testing.T) {
		// Arrange
		accessToken, err := token.Issue("user-123", models.RoleUser, cfg.JWTSecretKey, time.Hour)
		require.NoError(t, err)

		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rec := httptest.NewRecorder()

		// Act
		AuthMiddleware(cfg)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, next.called)
		assert.Equal(t, "user-123", next.userID)
		assert.Equal(t, models.RoleUser, next.role)
	})

	t.Run("Без заголовка Authorization", func(t *testing.T) {
		// Arrange
		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rec := httptest.NewRecorder()

		// Act
		AuthMiddleware(cfg)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("Неверный формат заголовка", func(t *testing.T) {
		// Arrange
		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		// Act
		AuthMiddleware(cfg)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("Просроченный токен", func(t *testing.T) {
		// Arrange
		accessToken, err := token.Issue("user-123", models.RoleUser, cfg.JWTSecretKey, -time.Minute)
		require.NoError(t, err)

		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rec := httptest.NewRecorder()

		// Act
		AuthMiddleware(cfg)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("Токен с чужой подписью", func(t *testing.T) {
		// Arrange
		accessToken, err := token.Issue("user-123", models.RoleUser, "other-secret", time.Hour)
		require.NoError(t, err)

		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rec := httptest.NewRecorder()

		// Act
		AuthMiddleware(cfg)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})
}

func TestRequireRole(t *testing.T) {
	withRole := func(req *http.Request, role string) *http.Request {
		return req.WithContext(context.WithValue(req.Context(), "role", role))
	}

	t.Run("Администратор проходит", func(t *testing.T) {
		// Arrange
		next := &nextRecorder{}
		req := withRole(httptest.NewRequest(http.MethodGet, "/api/users", nil), models.RoleAdmin)
		rec := httptest.NewRecorder()

		// Act
		RequireRole(models.RoleAdmin)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, next.called)
	})

	t.Run("Обычному пользователю запрещено", func(t *testing.T) {
		// Arrange
		next := &nextRecorder{}
		req := withRole(httptest.NewRequest(http.MethodGet, "/api/users", nil), models.RoleUser)
		rec := httptest.NewRecorder()

		// Act
		RequireRole(models.RoleAdmin)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("Без роли в контексте", func(t *testing.T) {
		// Arrange
		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		rec := httptest.NewRecorder()

		// Act
		RequireRole(models.RoleAdmin)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})
}

// stubLimiter отвечает заранее заданным решением
type stubLimiter struct {
	allow bool
	keys  []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	s.keys = append(s.keys, key)
	return s.allow
}

func (s *stubLimiter) Close() error { return nil }

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Без ограничителя запрос проходит", func(t *testing.T) {
		// Arrange
		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		rec := httptest.NewRecorder()

		// Act
		RateLimitMiddleware(nil, 5, time.Minute)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, next.called)
	})

	t.Run("Лимит не превышен", func(t *testing.T) {
		// Arrange
		limiter := &stubLimiter{allow: true}
		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.1.2.3:54321"
		rec := httptest.NewRecorder()

		// Act
		RateLimitMiddleware(limiter, 5, time.Minute)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		// the key is the client IP without the port
		assert.Equal(t, []string{"10.1.2.3"}, limiter.keys)
	})

	t.Run("Лимит превышен", func(t *testing.T) {
		// Arrange
		limiter := &stubLimiter{allow: false}
		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		rec := httptest.NewRecorder()

		// Act
		RateLimitMiddleware(limiter, 5, time.Minute)(next.handler()).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.False(t, next.called)
	})
}
