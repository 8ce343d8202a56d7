package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aidar/project-hub/internal/app"
	"github.com/aidar/project-hub/internal/config"
)

// shutdownTimeout сколько ждем завершения текущих запросов при остановке
const shutdownTimeout = 30 * time.Second

func main() {
	// Конфигурация: .env (если есть) и переменные окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Не удалось создать приложение: %v", err)
	}

	// Миграции (при DB_AUTO_MIGRATE=true), пул PostgreSQL, API и HTML страницы
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Initialize(ctx); err != nil {
		log.Fatalf("Не удалось инициализировать приложение: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	fmt.Printf("project-hub слушает %s:%s\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("  страницы: http://localhost:%s/projects\n", cfg.Server.Port)
	fmt.Printf("  страницы читают API по адресу %s/api\n", cfg.ResolveAPIBaseURL())

	// Ждем сигнал остановки или падение сервера
	select {
	case <-ctx.Done():
		fmt.Println("\nОстановка сервера...")
	case err := <-serverErr:
		if err != nil {
			log.Printf("Ошибка сервера: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Printf("Не удалось корректно остановить сервер: %v", err)
		os.Exit(1)
	}

	fmt.Println("Сервер остановлен")
}
