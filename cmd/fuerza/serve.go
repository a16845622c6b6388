// ABOUTME: CLI command for running the JSON HTTP API.
// ABOUTME: Shuts down gracefully when the command context is cancelled.
package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/harperreed/fuerza/internal/auth"
	"github.com/harperreed/fuerza/internal/web"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the JSON HTTP API with cookie sessions.

Routes live under /api (auth, me, summary, workouts, meals, measurements,
reports, options). Prometheus metrics are served at /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hasher, err := auth.NewHasher(cfg.PasswordScheme)
		if err != nil {
			return err
		}

		addr := cfg.ListenAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := web.New(web.Options{
			Repo:       repo,
			Hasher:     hasher,
			PhotoDir:   cfg.GetPhotoDir(),
			SessionTTL: cfg.GetSessionTTL(),
		})

		errCh := make(chan error, 1)
		go func() {
			slog.Info("listening", "addr", addr, "dialect", repo.Dialect())
			errCh <- srv.Listen(addr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return srv.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides listen_addr)")
	rootCmd.AddCommand(serveCmd)
}
