// Package mockapi - локальный stand-in каталога (gin).
//
// Serves the same routes and envelopes as the catalog backend from an
// in-memory store. Every Backend owns its data, seeded from a fixture
// factory, so tests never share mutable state. Failures and latency can be
// injected per route.
package mockapi

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Haleralex/storefront/internal/pkg/apierror"
)

// Route templates, in gin syntax. Fault injection is keyed by them.
const (
	RouteProductsV1 = "/api/v1/products"
	RouteProductsV2 = "/api/v2/products"
	RouteProductsV3 = "/api/v3/products"
	RouteProductV3  = "/api/v3/products/:id"
	RouteCategories = "/api/v1/categories"
	RouteCategory   = "/api/v1/categories/:id"
	RouteHealth     = "/health"
	RouteMetrics    = "/metrics"
)

// ============================================
// Configuration
// ============================================

// Config - конфигурация mock backend.
type Config struct {
	Logger *slog.Logger
	// Environment selects the gin mode: "production" → release, "test" → test.
	Environment string
	ServiceName string
	Version     string
	Latency     time.Duration
	// AllowOrigins for CORS; empty allows any origin.
	AllowOrigins []string
	// RateLimit is requests per minute per client on /api; 0 disables it.
	RateLimit int
	// Fixtures seeds the store; nil means DefaultFixtures().
	Fixtures *Fixtures
}

// Fault is an injected response for one method and route.
// RawBody, when set, is written verbatim (e.g. malformed JSON);
// an empty Message yields a response without body.
type Fault struct {
	Status  int
	Message string
	Details []apierror.ErrorDetail
	RawBody string
}

// ============================================
// Backend
// ============================================

// Backend - gin engine плюс его хранилище и инъекции ошибок.
type Backend struct {
	config Config
	store  *Store
	engine *gin.Engine

	mu     sync.RWMutex
	faults map[string]Fault
	delay  time.Duration
}

// New builds a backend with its own store.
func New(cfg Config) *Backend {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "storefront-mockapi"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	b := &Backend{
		config: cfg,
		store:  NewStore(cfg.Fixtures),
		faults: make(map[string]Fault),
		delay:  cfg.Latency,
	}
	b.engine = b.buildRouter()
	return b
}

// Handler returns the http.Handler serving the catalog.
func (b *Backend) Handler() http.Handler {
	return b.engine
}

// Store exposes the backing store (tests assert on it directly).
func (b *Backend) Store() *Store {
	return b.store
}

// Fail makes method+route answer with f until Recover or ClearFaults.
func (b *Backend) Fail(method, route string, f Fault) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[faultKey(method, route)] = f
}

// Recover removes the fault for method+route.
func (b *Backend) Recover(method, route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.faults, faultKey(method, route))
}

// ClearFaults removes every injected fault.
func (b *Backend) ClearFaults() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.faults)
}

// SetLatency changes the delay added to every request.
func (b *Backend) SetLatency(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delay = d
}

// Reset restores fixtures, faults and latency to their initial values.
func (b *Backend) Reset(f *Fixtures) {
	b.store.Reset(f)
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.faults)
	b.delay = b.config.Latency
}

func (b *Backend) fault(method, route string) (Fault, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f, ok := b.faults[faultKey(method, route)]
	return f, ok
}

func (b *Backend) latency() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.delay
}

func faultKey(method, route string) string {
	return method + " " + route
}

// ============================================
// Router
// ============================================

func (b *Backend) buildRouter() *gin.Engine {
	switch b.config.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	SetupValidator()

	router := gin.New()

	// ============================================
	// Global Middleware
	// ============================================

	// 1. Recovery - должен быть первым
	router.Use(Recovery(b.config.Logger))
	// 2. Request ID
	router.Use(RequestID())
	// 3. Tracing
	router.Use(otelgin.Middleware(b.config.ServiceName))
	// 4. Logging
	router.Use(Logging(b.config.Logger, RouteHealth, RouteMetrics))
	// 5. Metrics (Prometheus)
	router.Use(Metrics())
	// 6. CORS
	router.Use(CORS(b.config.AllowOrigins))

	// ============================================
	// Service Routes (no latency, no faults)
	// ============================================

	router.GET(RouteMetrics, gin.WrapH(promhttp.Handler()))
	router.GET(RouteHealth, healthHandler(b.config.Version))

	// ============================================
	// Catalog Routes
	// ============================================

	api := router.Group("/api")
	if b.config.RateLimit > 0 {
		api.Use(RateLimit(b.config.RateLimit, time.Minute))
	}
	api.Use(Latency(b), Faults(b))

	products := &productHandler{store: b.store}
	categories := &categoryHandler{store: b.store}

	v1 := api.Group("/v1")
	{
		v1.GET("/products", products.listV1)

		v1.GET("/categories", categories.list)
		v1.GET("/categories/:id", categories.get)
		v1.POST("/categories", categories.create)
		v1.PUT("/categories/:id", categories.update)
		v1.DELETE("/categories/:id", categories.delete)
	}

	api.GET("/v2/products", products.listV2)

	v3 := api.Group("/v3")
	{
		v3.GET("/products", products.listV3)
		v3.GET("/products/:id", products.getV3)
		v3.POST("/products", products.createV3)
		v3.PUT("/products/:id", products.replaceV3)
		v3.PATCH("/products/:id", products.patchV3)
		v3.DELETE("/products/:id", products.deleteV3)
	}

	// ============================================
	// 404 Handler
	// ============================================

	router.NoRoute(func(c *gin.Context) {
		NotFoundResponse(c, "No endpoint "+c.Request.Method+" "+c.Request.URL.Path)
	})

	return router
}
