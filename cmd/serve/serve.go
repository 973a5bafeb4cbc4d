package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neilberkman/chatvibe/cmd/root"
	"github.com/neilberkman/chatvibe/internal/config"
	"github.com/neilberkman/chatvibe/internal/server"
	"github.com/spf13/cobra"
)

var listen string

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis over HTTP",
	Long: `Start an HTTP server with a single stateless analysis endpoint.

  POST /api/v1/analyze   export as a multipart "file" part or a raw body
  GET  /healthz

Nothing is kept between requests.

Examples:
  chatvibe serve
  chatvibe serve --listen 127.0.0.1:9000
  curl -F file=@chat.txt -F keyword=점심 localhost:8080/api/v1/analyze`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	ServeCmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from server.listen)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	addr := listen
	if addr == "" {
		addr = cfg.Server.Listen
	}

	lex, err := root.Lexicon()
	if err != nil {
		return err
	}
	handler, err := server.NewServer(server.Options{
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Defaults:       cfg.Analysis.Settings,
		Lexicon:        lex,
		Enricher:       root.Enricher(),
		Logger:         slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	enrichTimeout := time.Duration(cfg.Enrich.TimeoutSeconds) * time.Second
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      enrichTimeout + 30*time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr, "max_upload_mb", cfg.Server.MaxUploadMB, "ai", cfg.Enrich.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
