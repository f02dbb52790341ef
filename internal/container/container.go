// Package container - Dependency Injection container for the application.
//
// Container управляет жизненным циклом всех зависимостей:
// - Создание (logger, tracing, HTTP client, API clients, services)
// - Доступ (getters и фабрики списков)
// - Закрытие (cleanup)
//
// Pattern: Composition Root
package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Haleralex/storefront/internal/adapters/api"
	"github.com/Haleralex/storefront/internal/adapters/httpclient"
	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/application/resource"
	"github.com/Haleralex/storefront/internal/application/services"
	"github.com/Haleralex/storefront/internal/config"
	"github.com/Haleralex/storefront/internal/pkg/logger"
	"github.com/Haleralex/storefront/internal/pkg/tracing"
)

// ============================================
// Container
// ============================================

// Container - DI контейнер приложения.
type Container struct {
	config *config.Config
	logger *slog.Logger

	// Cleanup
	closeLog        func() error
	shutdownTracing tracing.ShutdownFunc

	// Transport
	httpClient     *httpclient.Client
	baseHTTP       *http.Client
	tracerProvider trace.TracerProvider

	// API clients
	productsV1 *api.ProductsV1
	productsV2 *api.ProductsV2
	productsV3 *api.ProductsV3
	categories *api.Categories

	// Services
	productService   *services.ProductService
	productV2Service *services.ProductV2Service
	productV3Service *services.ProductV3Service
	categoryService  *services.CategoryService

	mutations *resource.CategoryMutations
	startedAt time.Time
}

// New создаёт новый контейнер с заданной конфигурацией.
func New(cfg *config.Config) *Container {
	return &Container{
		config: cfg,
	}
}

// ============================================
// Initialization
// ============================================

// Initialize инициализирует все зависимости.
func (c *Container) Initialize(ctx context.Context) error {
	if c.logger == nil {
		if err := c.initLogger(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	c.logger.Debug("Initializing application container...")

	// 1. Tracing
	if err := c.initTracing(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	// 2. HTTP client
	if err := c.initHTTPClient(); err != nil {
		return fmt.Errorf("failed to initialize http client: %w", err)
	}
	c.logger.Debug("HTTP client initialized", slog.String("base_url", c.httpClient.BaseURL()))

	// 3. API clients and services
	c.initServices()

	c.startedAt = time.Now()
	c.logger.Debug("Container initialization complete")
	return nil
}

// initLogger инициализирует логгер.
func (c *Container) initLogger() error {
	out, closeFn, err := logger.OpenOutput(c.config.Log.File)
	if err != nil {
		return err
	}

	c.closeLog = closeFn
	c.logger = logger.Setup(&logger.Config{
		Level:     c.config.Log.Level,
		Format:    c.config.Log.Format,
		Output:    out,
		AddSource: c.config.App.IsDevelopment() && c.config.Log.Level == "debug",
	})
	return nil
}

// initTracing устанавливает глобальный tracer provider (no-op без endpoint).
func (c *Container) initTracing(ctx context.Context) error {
	if c.tracerProvider != nil {
		c.shutdownTracing = func(context.Context) error { return nil }
		return nil
	}

	shutdown, err := tracing.Setup(ctx, tracing.Config{
		ServiceName:    c.config.Tracing.ServiceName,
		ServiceVersion: c.config.App.Version,
		Endpoint:       c.config.Tracing.OTLPEndpoint,
		Insecure:       c.config.Tracing.Insecure,
		SampleRatio:    c.config.Tracing.SampleRatio,
	})
	if err != nil {
		return err
	}
	c.shutdownTracing = shutdown
	return nil
}

func (c *Container) initHTTPClient() error {
	client, err := httpclient.New(httpclient.Config{
		BaseURL:        c.config.API.BaseURL,
		Timeout:        c.config.API.Timeout,
		HTTPClient:     c.baseHTTP,
		TracerProvider: c.tracerProvider,
		Logger:         c.logger,
		UserAgent:      c.config.API.UserAgent,
	})
	if err != nil {
		return err
	}
	c.httpClient = client
	return nil
}

func (c *Container) initServices() {
	c.productsV1 = api.NewProductsV1(c.httpClient)
	c.productsV2 = api.NewProductsV2(c.httpClient)
	c.productsV3 = api.NewProductsV3(c.httpClient)
	c.categories = api.NewCategories(c.httpClient)

	c.productService = services.NewProductService(c.productsV1)
	c.productV2Service = services.NewProductV2Service(c.productsV2)
	c.productV3Service = services.NewProductV3Service(c.productsV3)
	c.categoryService = services.NewCategoryService(c.categories)

	c.mutations = resource.NewCategoryMutations(c.categoryService, c.logger)
}

// ============================================
// Getters
// ============================================

// Config возвращает конфигурацию.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger возвращает логгер.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// HTTPClient возвращает клиент каталога.
func (c *Container) HTTPClient() *httpclient.Client {
	return c.httpClient
}

// ProductService возвращает сервис товаров v1.
func (c *Container) ProductService() *services.ProductService {
	return c.productService
}

// ProductV2Service возвращает сервис товаров v2.
func (c *Container) ProductV2Service() *services.ProductV2Service {
	return c.productV2Service
}

// ProductV3Service возвращает сервис товаров v3.
func (c *Container) ProductV3Service() *services.ProductV3Service {
	return c.productV3Service
}

// CategoryService возвращает сервис категорий.
func (c *Container) CategoryService() *services.CategoryService {
	return c.categoryService
}

// CategoryMutations возвращает общий helper мутаций категорий.
func (c *Container) CategoryMutations() *resource.CategoryMutations {
	return c.mutations
}

// ============================================
// List factories
// ============================================

// Every call returns a new, independent list.

func (c *Container) listConfig(size int) resource.Config {
	if size <= 0 {
		size = c.config.Catalog.PageSize
	}
	return resource.Config{
		Params: resource.Params{Size: size},
		Logger: c.logger,
	}
}

// ProductsV1List creates a v1 product list; size 0 means the configured page size.
func (c *Container) ProductsV1List(size int) *resource.List[dtos.Product] {
	return resource.NewProductsV1(c.productService, c.listConfig(size))
}

// ProductsV2List creates a v2 product list.
func (c *Container) ProductsV2List(size int) *resource.List[dtos.ProductV2] {
	return resource.NewProductsV2(c.productV2Service, c.listConfig(size))
}

// ProductsV3List creates a v3 product list.
func (c *Container) ProductsV3List(size int) *resource.List[dtos.ProductV3] {
	return resource.NewProductsV3(c.productV3Service, c.listConfig(size))
}

// CategoriesList creates the category list (a single page).
func (c *Container) CategoriesList() *resource.List[dtos.Category] {
	return resource.NewCategories(c.categoryService, resource.Config{Logger: c.logger})
}

// ============================================
// Shutdown
// ============================================

// Shutdown сбрасывает трейсы и закрывает лог-файл.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.shutdownTracing != nil {
		if err := c.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
		}
		c.shutdownTracing = nil
	}

	if c.closeLog != nil {
		if err := c.closeLog(); err != nil {
			errs = append(errs, fmt.Errorf("close log: %w", err))
		}
		c.closeLog = nil
	}

	return errors.Join(errs...)
}

// ============================================
// Builder Pattern (Alternative)
// ============================================

// ContainerBuilder - builder для создания контейнера с кастомными компонентами.
type ContainerBuilder struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpClient     *http.Client
	tracerProvider trace.TracerProvider
}

// NewBuilder создаёт новый builder.
func NewBuilder(cfg *config.Config) *ContainerBuilder {
	return &ContainerBuilder{
		cfg: cfg,
	}
}

// WithLogger устанавливает кастомный логгер.
func (b *ContainerBuilder) WithLogger(logger *slog.Logger) *ContainerBuilder {
	b.logger = logger
	return b
}

// WithHTTPClient задаёт базовый транспорт клиента каталога.
func (b *ContainerBuilder) WithHTTPClient(client *http.Client) *ContainerBuilder {
	b.httpClient = client
	return b
}

// WithTracerProvider uses tp instead of installing the global provider.
func (b *ContainerBuilder) WithTracerProvider(tp trace.TracerProvider) *ContainerBuilder {
	b.tracerProvider = tp
	return b
}

// Build создаёт и инициализирует контейнер.
func (b *ContainerBuilder) Build(ctx context.Context) (*Container, error) {
	c := New(b.cfg)
	c.logger = b.logger
	c.baseHTTP = b.httpClient
	c.tracerProvider = b.tracerProvider

	if err := c.Initialize(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// ============================================
// Health Check
// ============================================

// HealthStatus - статус доступности каталога.
type HealthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Uptime  time.Duration     `json:"uptime"`
	Checks  map[string]string `json:"checks"`
}

// Health проверяет доступность каталога запросом списка категорий.
func (c *Container) Health(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:  "healthy",
		Version: c.config.App.Version,
		Uptime:  time.Since(c.startedAt),
		Checks:  make(map[string]string),
	}

	if _, err := c.categoryService.List(ctx); err != nil {
		status.Status = "unhealthy"
		status.Checks["catalog"] = "error: " + err.Error()
	} else {
		status.Checks["catalog"] = "ok"
	}

	return status
}
