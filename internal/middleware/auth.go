package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/render"

	"github.com/aidar/project-hub/internal/domain"
	"github.com/aidar/project-hub/internal/envelope"
	"github.com/aidar/project-hub/internal/service"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

const (
	// UserIDKey ключ контекста для ID пользователя
	UserIDKey ContextKey = "user_id"
	// UsernameKey ключ контекста для username
	UsernameKey ContextKey = "username"
	// TokenKey ключ контекста для исходного JWT (страницы передают его дальше в API)
	TokenKey ContextKey = "token"
)

// SessionCookieName имя cookie, в которой страницы хранят JWT
const SessionCookieName = "session"

// AuthMiddleware создает middleware для валидации JWT токенов в API.
// Токен берется из заголовка Authorization: Bearer, а при его отсутствии из session cookie.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, message := extractToken(r)
			if token == "" {
				respondUnauthorized(w, r, message)
				return
			}

			// Валидируем токен
			claims, err := authService.ValidateToken(token)
			if err != nil {
				respondUnauthorized(w, r, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims, token)))
		})
	}
}

// SessionMiddleware защищает HTML страницы: без валидной session cookie
// пользователь перенаправляется на loginPath с параметром next.
func SessionMiddleware(authService *service.AuthService, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				if claims, err := authService.ValidateToken(cookie.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims, cookie.Value)))
					return
				}
			}

			target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}

func extractToken(r *http.Request) (token, message string) {
	// Получаем токен из заголовка Authorization
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Проверяем формат Bearer
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", "invalid authorization header format"
		}
		return parts[1], ""
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, ""
	}

	return "", "missing authorization header"
}

func withClaims(ctx context.Context, claims *service.Claims, token string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UsernameKey, claims.Username)
	return context.WithValue(ctx, TokenKey, token)
}

func respondUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, envelope.Error{Message: message, Code: string(domain.CodeUnauthorized)})
}

// GetUserIDFromContext извлекает ID пользователя из контекста
func GetUserIDFromContext(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUsernameFromContext извлекает username из контекста
func GetUsernameFromContext(ctx context.Context) string {
	username, ok := ctx.Value(UsernameKey).(string)
	if !ok {
		return ""
	}
	return username
}

// GetTokenFromContext извлекает исходный JWT из контекста
func GetTokenFromContext(ctx context.Context) string {
	token, ok := ctx.Value(TokenKey).(string)
	if !ok {
		return ""
	}
	return token
}
