// Package serve implements the serve command.
package serve

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/providerhub/internal/appcontext"
	"github.com/agentstation/providerhub/internal/server"
	"github.com/agentstation/providerhub/pkg/errors"
)

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "management",
		Short:   "Serve the provider registry over HTTP",
		Long: `Start a REST API server for the provider registry.

The API exposes provider metadata, credential management and model
fetching under the path prefix, and streams registry changes (providers
becoming configured, models updated, fetches failing) over WebSocket
and Server-Sent Events.

Host, port, API key and CORS origins default to the configuration file
and the HTTP_HOST, HTTP_PORT and PROVIDERHUB_SERVER_API_KEY variables.`,
		Args: cobra.NoArgs,
		Example: `  # Start on the configured address
  providerhub serve

  # Custom port with authentication
  providerhub serve --port 3000 --auth --api-key s3cret

  # Allow browser clients
  providerhub serve --cors-origins https://app.example.com

  # Load models of configured providers on startup
  providerhub serve --load`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromFlags(cmd, app)
			if err != nil {
				return err
			}
			load, _ := cmd.Flags().GetBool("load")
			return run(cmd.Context(), app, cfg, load)
		},
	}

	defaults := server.DefaultConfig()

	cmd.Flags().IntP("port", "p", 0, "Server port (default from config)")
	cmd.Flags().String("host", "", "Bind address (default from config)")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated)")

	cmd.Flags().Bool("auth", false, "Enable API key authentication")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Authentication header name")
	cmd.Flags().String("api-key", "", "API key clients must present (default from config)")

	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Int("rate-burst", defaults.RateBurst, "Burst size of the per IP rate limit")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Response cache TTL")

	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	cmd.Flags().Bool("load", false, "Load models of configured providers on startup")
	return cmd
}

// configFromFlags builds the server configuration from the application
// configuration, overridden by explicitly given flags.
func configFromFlags(cmd *cobra.Command, app appcontext.Interface) (server.Config, error) {
	cfg := server.DefaultConfig()
	flags := cmd.Flags()

	if host, port, err := net.SplitHostPort(app.ServerAddr()); err == nil {
		if host != "" {
			cfg.Host = host
		}
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			cfg.Port = p
		}
	}
	cfg.APIKey = app.ServerAPIKey()
	cfg.CORSOrigins = app.CORSOrigins()

	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("api-key") {
		cfg.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	}

	cfg.PathPrefix, _ = flags.GetString("prefix")
	cfg.CORSEnabled, _ = flags.GetBool("cors")
	cfg.CORSEnabled = cfg.CORSEnabled || len(cfg.CORSOrigins) > 0
	cfg.AuthEnabled, _ = flags.GetBool("auth")
	cfg.AuthHeader, _ = flags.GetString("auth-header")
	cfg.RateLimit, _ = flags.GetInt("rate-limit")
	cfg.RateBurst, _ = flags.GetInt("rate-burst")
	cfg.CacheTTL, _ = flags.GetDuration("cache-ttl")
	cfg.ReadTimeout, _ = flags.GetDuration("read-timeout")
	cfg.WriteTimeout, _ = flags.GetDuration("write-timeout")
	cfg.IdleTimeout, _ = flags.GetDuration("idle-timeout")

	if cfg.Port < 0 || cfg.Port > 65535 {
		return cfg, errors.NewValidationError("port", cfg.Port, "must be between 0 and 65535")
	}
	if cfg.AuthEnabled && cfg.APIKey == "" {
		return cfg, errors.NewValidationError("api-key", "", "required when --auth is set")
	}
	return cfg, nil
}

func run(ctx context.Context, app appcontext.Interface, cfg server.Config, load bool) error {
	logger := app.Logger()

	srv, err := server.New(app, cfg)
	if err != nil {
		return errors.WrapResource("create", "server", cfg.Addr(), err)
	}
	srv.Start()

	if load {
		reg, err := app.Registry()
		if err != nil {
			return err
		}
		go func() {
			start := time.Now()
			if err := reg.LoadModelsForConfiguredProviders(ctx); err != nil {
				logger.Warn().Err(err).Msg("startup model load interrupted")
				return
			}
			logger.Info().Dur("took", time.Since(start)).Msg("startup model load finished")
		}()
	}

	logger.Info().
		Str("addr", cfg.Addr()).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("starting api server")

	return srv.ListenAndServe(ctx)
}
