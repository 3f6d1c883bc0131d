package cmd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hmans/authors/internal/author"
	"github.com/hmans/authors/internal/authorcore"
	"github.com/hmans/authors/internal/client"
	"github.com/hmans/authors/internal/config"
	"github.com/hmans/authors/internal/logging"
	"github.com/hmans/authors/internal/output"
	"github.com/hmans/authors/internal/server"
)

var (
	cfg        *config.Config
	logger     *zap.Logger
	configPath string
	endpoint   string
)

var rootCmd = &cobra.Command{
	Use:   "authors",
	Short: "An in-memory author directory served over GraphQL",
	Long: `Authors keeps a small directory of authors in memory and serves it
over a GraphQL API. Run 'authors serve' to start the server, then use the
list, show, create, update, delete and search commands to talk to it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init writes the config file, so it must not require one
		if cmd.Name() == "init" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./"+config.ConfigFile+")")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "GraphQL endpoint of a running server (default derived from config)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, output.ErrJSONOutput) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// newCore builds an in-process core from the loaded config.
func newCore() (*authorcore.Core, error) {
	seed, err := author.LoadSeed(cfg.Authors.SeedFile)
	if err != nil {
		return nil, err
	}
	return authorcore.New(seed, authorcore.Options{
		IDStrategy: cfg.Authors.IDStrategy,
		UpdateMode: authorcore.UpdateMode(cfg.Authors.UpdateMode),
		Logger:     logger,
	})
}

// newClient returns a client for the server the CLI should talk to.
func newClient() *client.Client {
	return client.New(resolveEndpoint(), client.WithLogger(logger))
}

// resolveEndpoint prefers --endpoint and falls back to the configured listener.
func resolveEndpoint() string {
	if endpoint != "" {
		return endpoint
	}
	host := cfg.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Server.Port)) + server.GraphQLPath
}
