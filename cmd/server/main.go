package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/wims/backend/internal/application/identity"
	inventoryapp "github.com/wims/backend/internal/application/inventory"
	"github.com/wims/backend/internal/infrastructure/auth"
	"github.com/wims/backend/internal/infrastructure/cache"
	"github.com/wims/backend/internal/infrastructure/config"
	"github.com/wims/backend/internal/infrastructure/event"
	"github.com/wims/backend/internal/infrastructure/logger"
	"github.com/wims/backend/internal/infrastructure/persistence"
	"github.com/wims/backend/internal/interfaces/http/handler"
	"github.com/wims/backend/internal/interfaces/http/middleware"
	"github.com/wims/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting WMS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	materialRepo := persistence.NewGormMaterialRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	countTaskRepo := persistence.NewGormCountTaskRepository(db.DB)
	warningRepo := persistence.NewGormStockWarningRepository(db.DB)
	statsRepo := persistence.NewGormStatsRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingHandler(log))

	// Report cache, falling back to in-process memory when Redis is
	// not configured
	var reportCache inventoryapp.Cache
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		reportCache = redisCache
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		reportCache = cache.NewMemoryCache()
		log.Info("Redis not configured, using in-memory report cache")
	}

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	warningService := inventoryapp.NewWarningService(warningRepo, materialRepo, eventBus)
	materialService := inventoryapp.NewMaterialService(materialRepo, warningService, eventBus, log)
	movementService := inventoryapp.NewMovementService(movementRepo, txScope, warningService, eventBus, log)
	countService := inventoryapp.NewCountService(countTaskRepo, materialRepo, txScope, warningService, eventBus, log)
	reportService := inventoryapp.NewReportService(statsRepo, warningRepo, reportCache)
	authService := identityapp.NewAuthService(userRepo, jwtService, eventBus)
	userService := identityapp.NewUserService(userRepo, roleRepo, eventBus)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(
		middleware.RequestID(log),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(cfg.HTTP),
	)

	// Routes
	authHandler := handler.NewAuthHandler(authService)
	r := router.NewRouter(engine, middleware.Auth(jwtService))
	r.Public(
		handler.NewHealthHandler(db),
		router.RegistrarFunc(authHandler.RegisterPublicRoutes),
	)
	r.Protected(
		authHandler,
		handler.NewCountHandler(countService),
		handler.NewMaterialHandler(materialService),
		handler.NewStockInHandler(movementService),
		handler.NewStockOutHandler(movementService),
		handler.NewWarningHandler(warningService),
		handler.NewReportHandler(reportService),
		handler.NewUserHandler(userService),
	)
	r.Setup()

	// Background warning sweep
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Warning.SweepEnabled {
		go runWarningSweep(sweepCtx, warningService, cfg.Warning.SweepInterval, log)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runWarningSweep periodically re-evaluates all active materials so
// warnings stay current even without stock mutations
func runWarningSweep(ctx context.Context, warnings *inventoryapp.WarningService, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := warnings.Check(ctx)
			if err != nil {
				log.Error("Warning sweep failed", zap.Error(err))
				continue
			}
			log.Debug("Warning sweep finished",
				zap.Int("checked", result.Checked),
				zap.Int("raised", result.Raised),
				zap.Int("resolved", result.Resolved),
			)
		}
	}
}
