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

	"intelligent-cd/internal/di"
	"intelligent-cd/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	buildCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	container, err := di.NewContainer(buildCtx, di.Config{
		Env:     envService,
		BaseURL: envService.MustGet("REMOTE_BASE_URL"),
		Model:   envService.MustGet("INFERENCE_MODEL_ID"),
	})
	cancel()
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer container.Close()

	addr := envService.GetWithDefault("SERVER_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           container.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		container.Logger.Info("Server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("Server failed", "error", err)
		}
	case sig := <-stop:
		container.Logger.Info("Shutdown signal received", "signal", sig.String())
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			container.Logger.Error("Graceful shutdown failed", "error", err)
		}
	}
}
