package main

import (
	"flag"
	"log"

	"github.com/aidar/project-hub/internal/config"
	"github.com/aidar/project-hub/internal/db/migrate"
)

func main() {
	direction := flag.String("direction", "up", "Направление миграции: up или down")
	flag.Parse()

	// Загружаем конфигурацию из переменных окружения
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	if err := migrate.Run(cfg.DSN(), migrate.Direction(*direction)); err != nil {
		log.Fatalf("Не удалось применить миграции: %v", err)
	}

	log.Printf("Миграции применены (%s)", *direction)
}
