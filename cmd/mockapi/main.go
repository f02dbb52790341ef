// Command mockapi serves the demo catalog over HTTP for local development.
//
//	mockapi --port 8080 --latency 300ms
//	storefront --base-url http://127.0.0.1:8080 browse
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Haleralex/storefront/internal/config"
	"github.com/Haleralex/storefront/internal/mockapi"
	"github.com/Haleralex/storefront/internal/pkg/logger"
	"github.com/Haleralex/storefront/internal/pkg/tracing"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		host       string
		port       int
		latency    time.Duration
		rateLimit  int
		empty      bool
	)

	cmd := &cobra.Command{
		Use:           "mockapi",
		Short:         "Serve the demo catalog API",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// 1. Configuration
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Mock.Host = host
			}
			if flags.Changed("port") {
				cfg.Mock.Port = port
			}
			if flags.Changed("latency") {
				cfg.Mock.Latency = latency
			}
			if flags.Changed("rate-limit") {
				cfg.Mock.RateLimit = rateLimit
			}

			// 2. Logger
			log := logger.Setup(&logger.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: os.Stdout,
			})
			log.Info("🚀 Starting mock catalog API...")

			// 3. Tracing (no-op without an OTLP endpoint)
			shutdownTracing, err := tracing.Setup(cmd.Context(), tracing.Config{
				ServiceName:    "storefront-mockapi",
				ServiceVersion: version,
				Endpoint:       cfg.Tracing.OTLPEndpoint,
				Insecure:       cfg.Tracing.Insecure,
				SampleRatio:    cfg.Tracing.SampleRatio,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize tracing: %w", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdownTracing(ctx)
			}()

			// 4. Backend
			fixtures := mockapi.DefaultFixtures()
			if empty {
				fixtures = mockapi.EmptyFixtures()
			}
			backend := mockapi.New(mockapi.Config{
				Logger:       log,
				Environment:  cfg.App.Environment,
				Version:      version,
				Latency:      cfg.Mock.Latency,
				AllowOrigins: cfg.Mock.AllowOrigins,
				RateLimit:    cfg.Mock.RateLimit,
				Fixtures:     fixtures,
			})

			// 5. HTTP Server
			server := mockapi.NewServer(cfg.Mock, backend.Handler(), log)
			log.Info(fmt.Sprintf("🌍 Server starting on http://%s", cfg.Mock.Address()),
				slog.Duration("latency", cfg.Mock.Latency),
				slog.Int("rate_limit", cfg.Mock.RateLimit),
			)
			log.Info("Press Ctrl+C to stop")

			if err := server.Run(); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			log.Info("👋 Server stopped gracefully")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file")
	flags.StringVar(&host, "host", "", "listen host (overrides mock.host)")
	flags.IntVarP(&port, "port", "p", 0, "listen port (overrides mock.port)")
	flags.DurationVar(&latency, "latency", 0, "delay added to every API response")
	flags.IntVar(&rateLimit, "rate-limit", 0, "requests per minute per client, 0 disables")
	flags.BoolVar(&empty, "empty", false, "start with an empty catalog")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load("configs", "storefront")
}
