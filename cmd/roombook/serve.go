// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/roombook/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ranking and booking HTTP API",
	Long: `Serve exposes the ranking engine and booking registry over HTTP:

  GET    /health
  POST   /rank
  POST   /book
  DELETE /bookings/{id}
  GET    /rooms
  GET    /rooms/{id}/equipment

The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := loadConfig()

	eng, reg, sensors, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer reg.Close()
	defer sensors.Close()

	api := httpapi.NewServer(eng, reg, logger)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.Handler(os.Stdout),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http api listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
