package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig   // Настройки HTTP сервера
	Database DatabaseConfig // Настройки подключения к БД
	JWT      JWTConfig      // Настройки JWT авторизации
	Security SecurityConfig // Настройки хеширования паролей
	Web      WebConfig      // Настройки HTML страниц
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"project_hub"`
	Password    string `envconfig:"DB_PASSWORD" default:"project_hub_pass"`
	Name        string `envconfig:"DB_NAME" default:"project_hub"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int32  `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// JWTConfig содержит настройки JWT авторизации
type JWTConfig struct {
	Secret          string `envconfig:"JWT_SECRET" required:"true"`
	ExpirationHours int    `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`
}

// SecurityConfig содержит настройки bcrypt
type SecurityConfig struct {
	BcryptCost int `envconfig:"BCRYPT_COST" default:"12"`
}

// WebConfig содержит настройки страниц и клиента API, через который они получают данные
type WebConfig struct {
	// APIBaseURL адрес REST API; пустое значение означает собственный адрес сервера
	APIBaseURL   string        `envconfig:"WEB_API_BASE_URL"`
	FetchTimeout time.Duration `envconfig:"WEB_FETCH_TIMEOUT" default:"3s"`
	SecureCookie bool          `envconfig:"WEB_SECURE_COOKIE" default:"false"`
}

// GetExpiration возвращает срок действия токена как time.Duration
func (j JWTConfig) GetExpiration() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ResolveAPIBaseURL возвращает адрес API для страниц.
// Если WEB_API_BASE_URL не задан, страницы ходят в API этого же процесса через loopback.
func (c *Config) ResolveAPIBaseURL() string {
	if c.Web.APIBaseURL != "" {
		return c.Web.APIBaseURL
	}
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%s", host, c.Server.Port)
}

// Load читает конфигурацию из .env (если он есть) и переменных окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadDatabase читает только настройки БД (для cmd/migrate, которому не нужен JWT_SECRET)
func LoadDatabase() (*DatabaseConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg DatabaseConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	return &cfg, nil
}
