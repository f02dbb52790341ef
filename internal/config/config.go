// Package config - Application configuration management.
//
// Использует Viper для:
// - Загрузки из YAML файлов
// - Переменных окружения (.env подхватывается через godotenv)
// - Значений по умолчанию
//
// Порядок приоритета (от высшего к низшему):
// 1. Environment variables
// 2. Config file
// 3. Default values
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Haleralex/storefront/internal/pkg/pagination"
)

// EnvPrefix - префикс переменных окружения.
const EnvPrefix = "STOREFRONT"

// Поддерживаемые версии API товаров.
var apiVersions = map[string]bool{"v1": true, "v2": true, "v3": true}

// ============================================
// Main Configuration
// ============================================

// Config - главная структура конфигурации приложения.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	API     APIConfig     `mapstructure:"api"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Mock    ServerConfig  `mapstructure:"mock"`
}

// ============================================
// App Configuration
// ============================================

// AppConfig - конфигурация приложения.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"` // development, staging, production
}

// IsDevelopment возвращает true если окружение development.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction возвращает true если окружение production.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// ============================================
// API Configuration
// ============================================

// APIConfig - адрес каталога и параметры HTTP клиента.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout 0 means no client-side timeout.
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ============================================
// Catalog Configuration
// ============================================

// CatalogConfig - настройки списков каталога.
type CatalogConfig struct {
	PageSize   int    `mapstructure:"page_size"`
	APIVersion string `mapstructure:"api_version"` // v1, v2, v3
}

// ============================================
// Log Configuration
// ============================================

// LogConfig - конфигурация логирования.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
	// File receives the log; "" means stderr. The terminal UI always needs a file
	// or "discard", stdout belongs to the screen.
	File string `mapstructure:"file"`
}

// ============================================
// Observability Configuration
// ============================================

// MetricsConfig - адрес для /metrics; пустой адрес отключает экспорт.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// TracingConfig - экспорт трейсов по OTLP/HTTP.
type TracingConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	Insecure     bool    `mapstructure:"insecure"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

// Enabled reports whether an exporter endpoint is set.
func (c *TracingConfig) Enabled() bool {
	return c.OTLPEndpoint != ""
}

// ============================================
// Mock Server Configuration
// ============================================

// ServerConfig - конфигурация локального mock backend.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// Latency is added to every response (loading states are visible).
	Latency time.Duration `mapstructure:"latency"`
	// RateLimit - запросов в минуту на клиента, 0 = без лимита.
	RateLimit    int      `mapstructure:"rate_limit"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Address возвращает полный адрес сервера.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ============================================
// Configuration Loading
// ============================================

// LoadDotEnv loads .env files into the process environment. Missing files are
// ignored; variables already set are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load загружает конфигурацию из файла и переменных окружения.
//
// configPath - путь к директории с конфигурацией (например, "configs")
// configName - имя файла конфигурации без расширения (например, "storefront")
func Load(configPath, configName string) (*Config, error) {
	v := newViper()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// Читаем конфигурационный файл
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Файл не найден - используем defaults и env vars
	}

	return decode(v)
}

// LoadFile загружает конфигурацию из явно указанного файла.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(v)
}

// LoadFromEnv загружает конфигурацию только из переменных окружения.
func LoadFromEnv() (*Config, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults устанавливает значения по умолчанию.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "storefront")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")

	// API defaults
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("api.user_agent", "storefront")

	// Catalog defaults
	v.SetDefault("catalog.page_size", pagination.DefaultPageSize)
	v.SetDefault("catalog.api_version", "v3")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	// Observability defaults
	v.SetDefault("metrics.addr", "")
	v.SetDefault("tracing.otlp_endpoint", "")
	v.SetDefault("tracing.service_name", "storefront")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.sample_ratio", 1.0)

	// Mock server defaults
	v.SetDefault("mock.host", "127.0.0.1")
	v.SetDefault("mock.port", 8080)
	v.SetDefault("mock.read_timeout", "15s")
	v.SetDefault("mock.write_timeout", "15s")
	v.SetDefault("mock.idle_timeout", "60s")
	v.SetDefault("mock.shutdown_timeout", "10s")
	v.SetDefault("mock.latency", "0s")
	v.SetDefault("mock.rate_limit", 0)
	v.SetDefault("mock.allow_origins", []string{"*"})
}

// bindEnvVars привязывает переменные окружения.
func bindEnvVars(v *viper.Viper) {
	// Base URL: the frontend build variable name is honoured too
	_ = v.BindEnv("api.base_url", "STOREFRONT_API_BASE_URL", "VITE_API_BASE_URL", "API_BASE_URL")

	// Observability
	_ = v.BindEnv("tracing.otlp_endpoint", "STOREFRONT_TRACING_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = v.BindEnv("tracing.service_name", "STOREFRONT_TRACING_SERVICE_NAME", "OTEL_SERVICE_NAME")

	// Mock server
	_ = v.BindEnv("mock.port", "STOREFRONT_MOCK_PORT", "PORT")

	// App
	_ = v.BindEnv("app.environment", "STOREFRONT_APP_ENVIRONMENT", "ENVIRONMENT", "ENV")
}

// ============================================
// Configuration Validation
// ============================================

// Validate валидирует конфигурацию.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base url: %q", c.API.BaseURL)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api timeout must not be negative: %s", c.API.Timeout)
	}

	if c.Catalog.PageSize < pagination.MinPageSize || c.Catalog.PageSize > pagination.MaxPageSize {
		return fmt.Errorf("page size must be between %d and %d: %d",
			pagination.MinPageSize, pagination.MaxPageSize, c.Catalog.PageSize)
	}

	if !apiVersions[c.Catalog.APIVersion] {
		return fmt.Errorf("unsupported api version: %q", c.Catalog.APIVersion)
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample ratio must be between 0 and 1: %v", c.Tracing.SampleRatio)
	}

	if c.Mock.Port <= 0 || c.Mock.Port > 65535 {
		return fmt.Errorf("invalid mock server port: %d", c.Mock.Port)
	}

	if c.Mock.RateLimit < 0 {
		return fmt.Errorf("mock rate limit must not be negative: %d", c.Mock.RateLimit)
	}

	return nil
}

// ============================================
// Development Helpers
// ============================================

// Development возвращает конфигурацию для разработки.
func Development() *Config {
	return &Config{
		App: AppConfig{
			Name:        "storefront",
			Version:     "dev",
			Environment: "development",
		},
		API: APIConfig{
			BaseURL:   "http://localhost:8080",
			UserAgent: "storefront",
		},
		Catalog: CatalogConfig{
			PageSize:   pagination.DefaultPageSize,
			APIVersion: "v3",
		},
		Log: LogConfig{
			Level:  "debug",
			Format: "text",
		},
		Tracing: TracingConfig{
			ServiceName: "storefront",
			Insecure:    true,
			SampleRatio: 1,
		},
		Mock: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Test возвращает конфигурацию для тестов.
func Test() *Config {
	cfg := Development()
	cfg.App.Environment = "test"
	cfg.Log.Level = "error" // Меньше шума в тестах
	cfg.Log.File = "discard"
	return cfg
}
