package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"miniclaw/internal/adapter/httpapi"
	"miniclaw/internal/di"
	"miniclaw/internal/infrastructure/env"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := di.ConfigFromEnv(env.NewEnvService())
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	handler := httpapi.NewHandler(container.Runner, container.Logger)
	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           httpapi.NewRouter(handler, httpapi.DefaultConfig()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		container.Logger.Info("Server listening", "addr", cfg.ServerAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("Server failed", "error", err)
		}
		return
	case <-ctx.Done():
	}

	container.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Shutdown failed", "error", err)
	}
}
