package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"drifter-tracker/internal/api"
	"drifter-tracker/internal/logger"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config and DRIFTER_ADDR)")
	return cmd
}

func runServe(addr string) error {
	logger.Banner(version)

	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()
	if addr == "" {
		addr = e.cfg.ListenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(e.cfg, e.db)

	// Load SDE in background; routing endpoints answer 503 until it is ready.
	go func() {
		data, err := loadSDE(e.cfg)
		if err != nil {
			logger.Error("SDE", fmt.Sprintf("Load failed: %v", err))
			return
		}
		srv.SetSDE(data)
		logger.Success("SDE", "Router ready")
	}()

	srv.StartCleanup(ctx, time.Duration(e.cfg.CleanupIntervalMinutes)*time.Minute)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	logger.Server(addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Server", "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
