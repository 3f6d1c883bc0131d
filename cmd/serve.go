package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hmans/authors/internal/server"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphQL Playground at /graphql (GET) for interactive queries
  - A greeting at / and a health check at /healthz

The author store lives in memory and starts from the configured seed on
every start.

Examples:
  # Start server on the configured port (default 3501)
  authors serve

  # Start server on a custom port
  authors serve --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runServer()
	},
}

func runServer() error {
	core, err := newCore()
	if err != nil {
		return err
	}
	defer core.Close()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler, err := server.New(core, server.Options{
		DisablePlayground: cfg.Server.DisablePlayground,
		Logger:            logger,
	})
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Set up signal handling with context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("graphql", resolveEndpoint()),
			zap.Int("authors", core.Len()),
		)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server stopped")
	}

	return nil
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
