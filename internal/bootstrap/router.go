package bootstrap

import (
	"time"

	"github.com/archplans/plan-portal/config"
	"github.com/archplans/plan-portal/internal/admin"
	adminhttp "github.com/archplans/plan-portal/internal/admin/http"
	analyticshttp "github.com/archplans/plan-portal/internal/analytics/http"
	analytics "github.com/archplans/plan-portal/internal/analytics/service"
	httpapi "github.com/archplans/plan-portal/internal/api/http"
	"github.com/archplans/plan-portal/internal/api/http/middleware"
	"github.com/archplans/plan-portal/internal/auth"
	authhttp "github.com/archplans/plan-portal/internal/auth/http"
	"github.com/archplans/plan-portal/internal/backend"
	carthttp "github.com/archplans/plan-portal/internal/cart/http"
	cartrepo "github.com/archplans/plan-portal/internal/cart/repository"
	cartservice "github.com/archplans/plan-portal/internal/cart/service"
	cataloghttp "github.com/archplans/plan-portal/internal/catalog/http"
	catalog "github.com/archplans/plan-portal/internal/catalog/service"
	"github.com/archplans/plan-portal/internal/favorites"
	favoriteshttp "github.com/archplans/plan-portal/internal/favorites/http"
	"github.com/archplans/plan-portal/internal/session"
	"github.com/archplans/plan-portal/internal/upload"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	Config  *config.Config
	Backend *backend.Client
	Catalog *catalog.CatalogService
	Redis   *redis.Client
	// DB is nil unless favorites are stored in Postgres.
	DB *pgxpool.Pool
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, session.HeaderName},
		ExposeHeaders:    []string{middleware.HeaderRequestID, session.HeaderName, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(cfg.App.ServiceName, cfg.App.Version, dep.Backend.BaseURL(), dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(session.Middleware(cfg.App.Environment == "production"))

	profiles := auth.NewProfileService(dep.Backend, dep.Redis)

	catalogHandler := cataloghttp.New(dep.Catalog)
	catalogHandler.Register(api)

	cartHandler := carthttp.New(cartservice.NewCartService(cartrepo.NewCartRepository(dep.Redis), dep.Catalog))
	cartHandler.Register(api)

	var favStore favorites.Store = favorites.NewRedisStore(dep.Redis, cfg.Favorites.TTL)
	if cfg.Favorites.Store == "postgres" && dep.DB != nil {
		favStore = favorites.NewPostgresStore(dep.DB)
	}
	favoritesHandler := favoriteshttp.New(favorites.NewService(favStore, dep.Catalog), profiles)
	favoritesHandler.Register(api)

	authHandler := authhttp.New(profiles)
	authHandler.Register(api)

	adminGroup := api.Group("/admin")
	adminGroup.Use(auth.RequireBearer(), auth.RequireAdmin(profiles))

	adminService := admin.NewService(dep.Backend, dep.Catalog)
	adminhttp.New(adminService).Register(adminGroup)
	upload.New(dep.Backend, adminService).Register(adminGroup)
	analyticshttp.New(analytics.NewDashboardService(dep.Backend)).Register(adminGroup)

	return r
}
