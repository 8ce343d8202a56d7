package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/project-hub/internal/domain"
	"github.com/aidar/project-hub/internal/service"
)

func newTestAuth(t *testing.T) (*service.AuthService, string) {
	t.Helper()
	auth := service.NewAuthService(nil, nil, "middleware-secret", time.Hour)
	token, err := auth.IssueToken(&domain.User{ID: "u1", Username: "alice"})
	require.NoError(t, err)
	return auth, token
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(GetUserIDFromContext(r.Context()) + "|" + GetUsernameFromContext(r.Context())))
}

func TestAuthMiddleware(t *testing.T) {
	auth, token := newTestAuth(t)
	h := AuthMiddleware(auth)(http.HandlerFunc(echoUser))

	t.Run("Bearer токен", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1|alice", rec.Body.String())
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("нет токена", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"missing authorization header","code":"UNAUTHORIZED"}`, rec.Body.String())
	})

	t.Run("неверный формат заголовка", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Authorization", "Token "+token)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("невалидный токен", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid or expired token")
	})
}

func TestSessionMiddleware(t *testing.T) {
	auth, token := newTestAuth(t)
	h := SessionMiddleware(auth, "/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetTokenFromContext(r.Context())))
	}))

	t.Run("валидная сессия пропускает запрос и кладет токен в контекст", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, token, rec.Body.String())
	})

	t.Run("без сессии редирект на логин", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects?new=1", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?next=%2Fprojects%3Fnew%3D1", rec.Header().Get("Location"))
	})
}
