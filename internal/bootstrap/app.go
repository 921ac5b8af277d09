package bootstrap

import (
	"context"
	"fmt"

	"github.com/archplans/plan-portal/config"
	"github.com/archplans/plan-portal/internal/backend"
	"github.com/archplans/plan-portal/internal/catalog/repository"
	catalog "github.com/archplans/plan-portal/internal/catalog/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App holds the long-lived dependencies of the portal process.
type App struct {
	Config  *config.Config
	Backend *backend.Client
	Catalog *catalog.CatalogService
	Redis   *redis.Client
	DB      *pgxpool.Pool
}

// NewBackend builds the backend client from configuration.
func NewBackend(cfg *config.Config) *backend.Client {
	return backend.NewClient(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		RPS:     cfg.Backend.RPS,
		Burst:   cfg.Backend.Burst,
	})
}

// NewApp connects to Redis and, when favorites are durable, Postgres.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	rdb, err := OpenRedis(ctx, RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Backend: NewBackend(cfg),
		Redis:   rdb,
	}
	app.Catalog = catalog.NewCatalogService(app.Backend, repository.NewSnapshotRepository(rdb, cfg.Catalog.CacheTTL))

	if cfg.Favorites.Store == "postgres" {
		pool, err := OpenDB(ctx, DBOptions{
			DSN:      cfg.Database.DSN,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("favorites store: %w", err)
		}
		app.DB = pool
	}

	return app, nil
}

// Router builds the HTTP router over the app's dependencies.
func (a *App) Router() *gin.Engine {
	return BuildRouter(RouterDeps{
		Config:  a.Config,
		Backend: a.Backend,
		Catalog: a.Catalog,
		Redis:   a.Redis,
		DB:      a.DB,
	})
}

// Close releases the connections held by the app.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}
