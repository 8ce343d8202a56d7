package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aidar/project-hub/internal/client"
	"github.com/aidar/project-hub/internal/middleware"
	"github.com/aidar/project-hub/internal/view"
)

// LoginPath адрес страницы входа, на него SessionMiddleware отправляет гостей
const LoginPath = "/login"

// loginPage данные формы входа
type loginPage struct {
	Next     string
	Username string
	Error    string
}

// LoginForm обрабатывает GET /login
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	page := loginPage{Next: safeNext(r.URL.Query().Get("next"))}
	h.render(w, r, http.StatusOK, pageLogin, layoutData{Title: "Sign in", Page: page})
}

// Login обрабатывает POST /login: получает JWT через API и кладет его в session cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, pageLogin, layoutData{
			Title: "Sign in",
			Page:  loginPage{Next: view.ProjectsPath, Error: "invalid form"},
		})
		return
	}

	page := loginPage{
		Next:     safeNext(r.PostFormValue("next")),
		Username: strings.TrimSpace(r.PostFormValue("username")),
	}

	session, err := h.api.Login(r.Context(), page.Username, r.PostFormValue("password"))
	if err != nil {
		page.Error = client.DisplayMessage(err)
		status := http.StatusUnauthorized
		var te *client.TransportError
		if errors.As(err, &te) && te.StatusCode == http.StatusBadRequest {
			status = http.StatusBadRequest
		}
		h.render(w, r, status, pageLogin, layoutData{Title: "Sign in", Page: page})
		return
	}

	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if h.sessionTTL > 0 {
		cookie.MaxAge = int(h.sessionTTL / time.Second)
	}
	http.SetCookie(w, cookie)

	h.logger.InfoContext(r.Context(), "User signed in", "user_id", session.User.ID)
	http.Redirect(w, r, page.Next, http.StatusSeeOther)
}

// Logout обрабатывает POST /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// safeNext пропускает только локальные пути, чтобы вход нельзя было использовать как open redirect
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return view.ProjectsPath
	}
	return next
}
