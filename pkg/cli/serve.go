package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/testforge-dev/testforge/pkg/cli/config"
	controller "github.com/testforge-dev/testforge/pkg/controller/http"
	"github.com/testforge-dev/testforge/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		anthropicCfg config.Anthropic
		catalogCfg   config.Catalog
	)

	flags := joinFlags(
		serverCfg.Flags(),
		anthropicCfg.Flags(),
		catalogCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Get logger from root command metadata
			logger := ctxlog.From(ctx)

			logger.Info("Starting testforge server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("anthropic", anthropicCfg),
				slog.Any("catalog", catalogCfg),
			)

			// Load the test type catalog
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return err
			}

			// Create the Anthropic client. A missing key is not fatal so
			// the health endpoint can report the state, but generation
			// requests will fail until one is provided.
			llmClient := anthropicCfg.Configure()
			if !anthropicCfg.IsConfigured() {
				logger.Warn("Anthropic API key is not configured, generation requests will fail")
			}

			// Create use cases
			useCases := controller.NewUseCases(
				usecase.NewGeneration(llmClient, catalog),
				usecase.NewExport(catalog),
			)

			// Create HTTP server
			server, err := controller.NewServer(
				ctx,
				serverCfg.Addr,
				useCases,
				catalog,
				serverCfg.CORSOrigin,
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
