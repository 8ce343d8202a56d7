package web

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/project-hub/internal/client"
	"github.com/aidar/project-hub/internal/domain"
	"github.com/aidar/project-hub/internal/middleware"
	"github.com/aidar/project-hub/internal/view"
)

// pendingRefreshSeconds через сколько секунд страница в состоянии загрузки запрашивается снова
const pendingRefreshSeconds = 2

// ProjectsClient это часть клиента API, которая нужна страницам
type ProjectsClient interface {
	ListProjects(ctx context.Context, token string) client.Result[domain.ProjectList]
	GetProject(ctx context.Context, token, projectID string) client.Result[domain.ProjectDetail]
	CreateProject(ctx context.Context, token string, in client.CreateProjectRequest) (*domain.Project, error)
	Login(ctx context.Context, username, password string) (*client.Session, error)
}

// Options настройки страниц
type Options struct {
	// FetchTimeout сколько страница ждет ответа API, прежде чем показать состояние загрузки
	FetchTimeout time.Duration
	// SessionTTL срок жизни session cookie, совпадает со сроком JWT
	SessionTTL   time.Duration
	SecureCookie bool
	Logger       *slog.Logger
}

// Handler обрабатывает HTML страницы
type Handler struct {
	api          ProjectsClient
	templates    map[string]*template.Template
	fetchTimeout time.Duration
	sessionTTL   time.Duration
	secureCookie bool
	logger       *slog.Logger
}

// NewHandler создает Handler и разбирает встроенные шаблоны
func NewHandler(api ProjectsClient, opts Options) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fetchTimeout := opts.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = 3 * time.Second
	}

	return &Handler{
		api:          api,
		templates:    templates,
		fetchTimeout: fetchTimeout,
		sessionTTL:   opts.SessionTTL,
		secureCookie: opts.SecureCookie,
		logger:       logger,
	}, nil
}

// Mount регистрирует страницы в роутере. session защищает все страницы, кроме входа.
func (h *Handler) Mount(r chi.Router, session func(http.Handler) http.Handler) {
	r.Get(LoginPath, h.LoginForm)
	r.Post(LoginPath, h.Login)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(session)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, view.ProjectsPath, http.StatusSeeOther)
		})
		r.Get(view.ProjectsPath, h.ListProjects)
		r.Post(view.ProjectsPath, h.CreateProject)
		r.Get(view.ProjectsPath+"/{projectID}", h.GetProject)
	})
}

// layoutData данные общего каркаса страницы
type layoutData struct {
	Title          string
	User           string
	RefreshSeconds int
	Page           any
}

// render выполняет шаблон в буфер, чтобы ошибка шаблона не оставила половину страницы
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data layoutData) {
	tmpl, ok := h.templates[page]
	if !ok {
		h.logger.ErrorContext(r.Context(), "Unknown template", "template", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data.User = middleware.GetUsernameFromContext(r.Context())

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render template", "template", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write page", "template", page, "error", err)
	}
}

// fetchContext ограничивает ожидание ответа API для одной страницы
func (h *Handler) fetchContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.fetchTimeout)
}
