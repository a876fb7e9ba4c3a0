// Package server boots every dependency and runs the HTTP (and optional
// gRPC health) listeners until the process is signalled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/config"
	"github.com/shashiranjanraj/souq/internal/kernel"
	"github.com/shashiranjanraj/souq/pkg/cache"
	"github.com/shashiranjanraj/souq/pkg/database"
	"github.com/shashiranjanraj/souq/pkg/event"
	grpcserver "github.com/shashiranjanraj/souq/pkg/grpc"
	"github.com/shashiranjanraj/souq/pkg/logger"
	"github.com/shashiranjanraj/souq/pkg/orm"
	"github.com/shashiranjanraj/souq/pkg/storage"
	"github.com/shashiranjanraj/souq/pkg/workerpool"
	"github.com/shashiranjanraj/souq/pkg/ws"
)

const shutdownTimeout = 15 * time.Second

// Start runs until SIGINT/SIGTERM, then drains in-flight requests and events.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Run(ctx)
}

// Run is Start with a caller-owned context.
func Run(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := logger.Boot(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Close()

	if err := database.Connect(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer database.Close()

	if err := cache.Connect(ctx); err != nil {
		logger.Warn("cache disabled", "error", err)
	}
	defer cache.Close()

	if err := storage.Connect(ctx); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	pool := workerpool.New(config.Int("EVENT_WORKERS", 8))
	event.UsePool(pool)
	defer func() {
		event.Wait()
		pool.Shutdown()
	}()

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	hub := ws.NewHub()
	go hub.Run(hubCtx)
	services.RegisterListeners(hub)

	httpKernel, err := kernel.NewHTTPKernel(kernel.Config{
		DB:          orm.Use(database.DB),
		Hub:         hub,
		Check:       database.Ping,
		StorageRoot: config.StorageLocalRoot(),
	})
	if err != nil {
		return err
	}

	if port := config.GRPCPort(); port != "" {
		srv, err := grpcserver.Start(port, database.Ping)
		if err != nil {
			return fmt.Errorf("grpc: %w", err)
		}
		defer grpcserver.Stop(srv)
	}

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", httpSrv.Addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	// websockets are hijacked and not tracked by Shutdown; closing the hub ends them
	stopHub()
	return httpSrv.Shutdown(shutdownCtx)
}
