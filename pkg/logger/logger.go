// Package logger provides the structured, levelled logger built on log/slog.
//
// WithCtx returns the per-request logger injected by middleware.Logger, so
// every line written from a handler or service carries the request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", order.ID)
//	// → time=... level=INFO msg="order placed" request_id=8d0e... order_id=12
package logger

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/shashiranjanraj/souq/config"
)

var L *slog.Logger

var (
	bootMu sync.Mutex
	sink   *MongoHandler
)

func init() {
	L = slog.New(stdoutHandler())
	slog.SetDefault(L)
}

func stdoutHandler() slog.Handler {
	if config.IsProduction() {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// Boot attaches the MongoDB sink when LOG_MONGO_URI is configured. Without it
// the stdout logger from init stays in place. Call Close on shutdown.
func Boot() error {
	uri := config.Get("LOG_MONGO_URI", "")
	if uri == "" {
		return nil
	}

	h, err := NewMongoHandler(uri,
		config.Get("LOG_MONGO_DB", "souq"),
		config.Get("LOG_MONGO_COLLECTION", "logs"),
	)
	if err != nil {
		return err
	}

	bootMu.Lock()
	defer bootMu.Unlock()
	sink = h
	L = slog.New(NewMultiHandler(stdoutHandler(), h))
	slog.SetDefault(L)
	L.Info("mongo log sink attached", "db", config.Get("LOG_MONGO_DB", "souq"))
	return nil
}

// Close flushes the Mongo sink, if any.
func Close() {
	bootMu.Lock()
	defer bootMu.Unlock()
	if sink != nil {
		sink.Close()
		sink = nil
	}
}

type ctxKey struct{}

// WithCtx returns the logger stored in ctx by InjectLogger, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }

func Info(msg string, args ...any) { L.Info(msg, args...) }

func Warn(msg string, args ...any) { L.Warn(msg, args...) }

func Error(msg string, args ...any) { L.Error(msg, args...) }
