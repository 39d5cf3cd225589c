// Package bootstrap wires configuration into live database, Redis and tracing handles.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"forum/internal/cache"
	"forum/internal/config"
	"forum/internal/database"
	"forum/internal/middleware"
	"forum/internal/models"
	"forum/internal/observability"
	"forum/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData fills an empty development database with demo content.
	SeedDemoData bool
}

// Runtime holds the shared handles a process needs.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client

	shutdownTracing func(context.Context) error
}

// InitRuntime starts tracing, connects to the database and Redis and optionally seeds.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    observability.ServiceName,
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		_ = database.Close(db)
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	rt := &Runtime{DB: db, Redis: rdb, shutdownTracing: shutdownTracing}

	if opts.SeedDemoData && !cfg.IsProduction() {
		if err := seedIfEmpty(db); err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("demo seeding failed: %w", err)
		}
	}

	return rt, nil
}

func seedIfEmpty(db *gorm.DB) error {
	var users int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	res, err := seed.NewSeeder(db, seed.DefaultOptions()).Run()
	if err != nil {
		return err
	}
	middleware.Logger.Info("demo data seeded",
		slog.Int("users", len(res.Users)),
		slog.String("password", seed.DefaultPassword),
	)
	return nil
}

// Close releases the database, Redis and the tracer provider.
func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	if rt.DB != nil {
		if err := database.Close(rt.DB); err != nil {
			errs = append(errs, err)
		}
	}
	if rt.Redis != nil {
		if err := rt.Redis.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if rt.shutdownTracing != nil {
		if err := rt.shutdownTracing(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ShutdownTracing flushes the tracer provider only. Use it when another owner,
// such as the HTTP server, already closed the database and Redis.
func (rt *Runtime) ShutdownTracing(ctx context.Context) error {
	if rt.shutdownTracing == nil {
		return nil
	}
	return rt.shutdownTracing(ctx)
}
