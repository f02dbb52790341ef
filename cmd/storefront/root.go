package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Haleralex/storefront/internal/config"
	"github.com/Haleralex/storefront/internal/container"
	"github.com/Haleralex/storefront/internal/pkg/logger"
)

// version is set at build time: -ldflags "-X main.version=1.2.0".
var version = "dev"

// app holds the global flags and what PersistentPreRunE builds from them.
type app struct {
	configFile  string
	envFile     string
	baseURL     string
	logLevel    string
	logFile     string
	metricsAddr string

	cfg       *config.Config
	container *container.Container
	metrics   *http.Server
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront catalog client",
		Long: `storefront talks to the catalog API: products (v1, v2, v3) and categories.

Configuration comes from defaults, then the config file, then STOREFRONT_*
environment variables (a .env file is loaded first), then flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "config file (default: ./configs/storefront.yaml if present)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the config")
	flags.StringVar(&a.baseURL, "base-url", "", "catalog API base URL (overrides api.base_url)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFile, "log-file", "", `log destination: file path, "stderr" or "discard"`)
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus /metrics on this address while running")

	root.AddCommand(
		newBrowseCmd(a),
		newProductsCmd(a),
		newCategoriesCmd(a),
		newHealthCmd(a),
	)
	return root
}

// ============================================
// Setup / Teardown
// ============================================

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.applyFlags(cfg)
	if cmd.Name() == "browse" && cfg.Log.File == "" {
		// stdout and stderr belong to the screen
		cfg.Log.File = "discard"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	a.cfg = cfg

	ctx := logger.WithSessionID(cmd.Context(), uuid.NewString())
	cmd.SetContext(ctx)

	c, err := container.NewBuilder(cfg).Build(ctx)
	if err != nil {
		return err
	}
	a.container = c

	if cfg.Metrics.Addr != "" {
		if err := a.serveMetrics(cfg.Metrics.Addr); err != nil {
			return err
		}
	}

	c.Logger().DebugContext(ctx, "storefront started",
		slog.String("command", cmd.CommandPath()),
		slog.String("base_url", cfg.API.BaseURL),
	)
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configFile != "" {
		return config.LoadFile(a.configFile)
	}
	return config.Load("configs", "storefront")
}

// applyFlags lets explicitly set flags win over file and env.
func (a *app) applyFlags(cfg *config.Config) {
	cfg.App.Version = version
	if a.baseURL != "" {
		cfg.API.BaseURL = a.baseURL
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}
	if a.metricsAddr != "" {
		cfg.Metrics.Addr = a.metricsAddr
	}
}

func (a *app) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen for metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	a.metrics = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log := a.container.Logger()
	go func() {
		if err := a.metrics.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()
	log.Info("metrics server listening", slog.String("addr", ln.Addr().String()))
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	var errs []error
	if a.metrics != nil {
		errs = append(errs, a.metrics.Shutdown(ctx))
		a.metrics = nil
	}
	if a.container != nil {
		errs = append(errs, a.container.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
