package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cacheadapter "github.com/Amxn-2/Employee-Management/internal/adapter/cache"
	"github.com/Amxn-2/Employee-Management/internal/bootstrap"
	"github.com/Amxn-2/Employee-Management/internal/config"
	httptransport "github.com/Amxn-2/Employee-Management/internal/http"
	"github.com/Amxn-2/Employee-Management/internal/http/handler"
	httpmiddleware "github.com/Amxn-2/Employee-Management/internal/http/middleware"
	"github.com/Amxn-2/Employee-Management/internal/jwt"
	apimiddleware "github.com/Amxn-2/Employee-Management/internal/middleware"
	"github.com/Amxn-2/Employee-Management/internal/repository"
	"github.com/Amxn-2/Employee-Management/internal/server"
	"github.com/Amxn-2/Employee-Management/internal/service"
	"github.com/Amxn-2/Employee-Management/internal/telemetry"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newSnowflake,
			newPGXPool,
			newStudentRepository,
			newEmployeeRepository,
			newRedisClient,
			newStudentCache,
			newTokenGenerator,
			service.NewStudentService,
			service.NewEmployeeService,
			handler.NewStudentHandler,
			handler.NewEmployeeHandler,
			newAuthMiddleware,
			newRateLimiter,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, bootstrap.RunMigrations, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func newPGXPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newStudentRepository(pool *pgxpool.Pool) repository.StudentRepository {
	return repository.NewPostgresStudentRepo(pool)
}

func newEmployeeRepository(pool *pgxpool.Pool) repository.EmployeeRepository {
	return repository.NewPostgresEmployeeRepo(pool)
}

// newRedisClient is optional: with no REDIS_ADDR configured the legacy UUID
// path simply skips the cache.
func newRedisClient(lc fx.Lifecycle, cfg config.Config) (redis.UniversalClient, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newStudentCache(client redis.UniversalClient, cfg config.Config) repository.StudentCache {
	if client == nil {
		return nil
	}
	return cacheadapter.NewRedisStudentCache(client, cfg.StudentCacheTTL)
}

func newTokenGenerator(cfg config.Config) *jwt.Generator {
	return jwt.NewGenerator(cfg.JWTSecret, cfg.ServiceName, cfg.AccessTokenTTL)
}

func newAuthMiddleware(students *service.StudentService, cfg config.Config) *httpmiddleware.Auth {
	return &httpmiddleware.Auth{Students: students, AllowLegacyHeader: cfg.LegacyHeaderAuth}
}

func newRateLimiter(cfg config.Config) *apimiddleware.RateLimiter {
	return apimiddleware.NewRateLimiter(cfg.RateLimitRPM)
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
