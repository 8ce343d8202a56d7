package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/project-hub/internal/client"
	"github.com/aidar/project-hub/internal/config"
	"github.com/aidar/project-hub/internal/db/migrate"
	"github.com/aidar/project-hub/internal/handler"
	"github.com/aidar/project-hub/internal/middleware"
	"github.com/aidar/project-hub/internal/repository/postgres"
	"github.com/aidar/project-hub/internal/security"
	"github.com/aidar/project-hub/internal/service"
	"github.com/aidar/project-hub/internal/web"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	pool   *pgxpool.Pool
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	// Обработчики ошибок API пишут в логгер по умолчанию
	slog.SetDefault(logger)

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Применяем миграции до открытия пула, чтобы запросы видели актуальную схему
	if a.config.Database.AutoMigrate {
		if err := migrate.Run(a.config.Database.DSN(), migrate.Up); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		a.logger.Info("Database migrations applied")
	}

	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	if err := a.setupServer(); err != nil {
		return fmt.Errorf("failed to setup server: %w", err)
	}

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.pool = pool
	// Репозитории работают через database/sql поверх того же пула
	a.db = postgres.OpenDB(pool)
	a.logger.Info("Connected to database")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() error {
	// Инициализируем слой репозиториев (работа с БД)
	userRepo := postgres.NewUserRepository(a.db)
	projectRepo := postgres.NewProjectRepository(a.db)
	membershipRepo := postgres.NewMembershipRepository(a.db)

	// Инициализируем слой сервисов (бизнес-логика)
	hasher := security.NewHasher(a.config.Security.BcryptCost)
	authService := service.NewAuthService(
		userRepo,
		hasher,
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
	)
	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo, membershipRepo, userRepo)
	statsService := service.NewStatsService(a.pool)

	// Инициализируем HTTP обработчики
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Страницы получают данные через REST API, как внешний клиент
	apiClient := client.New(client.Options{
		BaseURL: a.config.ResolveAPIBaseURL(),
		Logger:  a.logger,
	})
	webHandler, err := web.NewHandler(apiClient, web.Options{
		FetchTimeout: a.config.Web.FetchTimeout,
		SessionTTL:   a.config.JWT.GetExpiration(),
		SecureCookie: a.config.Web.SecureCookie,
		Logger:       a.logger,
	})
	if err != nil {
		return err
	}

	// Инициализируем middleware для JWT авторизации
	authMiddleware := middleware.AuthMiddleware(authService)
	sessionMiddleware := middleware.SessionMiddleware(authService, web.LoginPath)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := a.pool.Ping(r.Context()); err != nil {
			a.logger.Error("Health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Route("/api", func(r chi.Router) {
		// Публичные эндпоинты (без авторизации)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Защищенные эндпоинты (Bearer токен или session cookie)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Get("/me", userHandler.Me)

			// Эндпоинты проектов и участников
			r.Get("/projects", projectHandler.ListProjects)
			r.Post("/projects", projectHandler.CreateProject)
			r.Get("/projects/{projectID}", projectHandler.GetProject)
			r.Get("/projects/{projectID}/members", projectHandler.ListMembers)
			r.Post("/projects/{projectID}/members", projectHandler.AddMember)
			r.Delete("/projects/{projectID}/members/{memberID}", projectHandler.RemoveMember)

			// Эндпоинты статистики
			r.Get("/stats", statsHandler.GetStats)
		})
	})

	// HTML страницы
	webHandler.Mount(r, sessionMiddleware)

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr, "api_base_url", a.config.ResolveAPIBaseURL())
	return nil
}

// Handler возвращает корневой роутер (используется в тестах)
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("Failed to close sql.DB", "error", err)
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
