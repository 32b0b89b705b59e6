package app

import (
	"context"
	"net/http"
	"time"

	_ "hris-dashboard/docs"
	"hris-dashboard/internal/bootstrap"
	"hris-dashboard/internal/config"
	"hris-dashboard/internal/middleware"
	"hris-dashboard/internal/notification"
	"hris-dashboard/internal/rbac"
	"hris-dashboard/internal/rbac/infra"
	"hris-dashboard/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RunAPI connects infrastructure, mounts every module under /api/v1 and
// serves until ctx is cancelled.
func RunAPI(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.api")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := Migrate(gormDB); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	policy, err := rbac.LoadPolicy(cfg.RBAC.PolicyPath)
	if err != nil {
		return err
	}
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, policy, logger)
	if err != nil {
		return err
	}

	hub := notification.NewHub(logger)
	go hub.Run(ctx)

	audit := bootstrap.NewZapAuditLogger(logger)
	router := NewRouter(cfg, logger)
	mods := registerModules(router.Group("/api/v1"), cfg, sqlDB, gormDB, rdb, rbacService, hub, logger)

	seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	seeded, err := SeedAdmin(seedCtx, mods.users, cfg.Seed, audit)
	cancel()
	if err != nil {
		log.Warn("seed admin failed", zap.Error(err))
	} else if seeded {
		log.Info("admin account seeded", zap.String("username", cfg.Seed.AdminUsername))
	}

	return bootstrap.StartHTTPServer(ctx, router, bootstrap.ServerConfig{
		Port:         cfg.App.Port,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	}, audit)
}

// NewRouter builds the engine with the global middleware chain and the
// ops endpoints. Module routes are added by the caller.
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderIdempotencyKey, middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Disposition", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
