package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/dukahub/backend/internal/application/catalog"
	identityapp "github.com/dukahub/backend/internal/application/identity"
	partnerapp "github.com/dukahub/backend/internal/application/partner"
	storeapp "github.com/dukahub/backend/internal/application/store"
	tradeapp "github.com/dukahub/backend/internal/application/trade"
	"github.com/dukahub/backend/internal/infrastructure/auth"
	"github.com/dukahub/backend/internal/infrastructure/config"
	"github.com/dukahub/backend/internal/infrastructure/logger"
	"github.com/dukahub/backend/internal/infrastructure/notification"
	"github.com/dukahub/backend/internal/infrastructure/oidc"
	"github.com/dukahub/backend/internal/infrastructure/persistence"
	"github.com/dukahub/backend/internal/infrastructure/storage"
	"github.com/dukahub/backend/internal/infrastructure/telemetry"
	"github.com/dukahub/backend/internal/interfaces/http/handler"
	"github.com/dukahub/backend/internal/interfaces/http/middleware"
	"github.com/dukahub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// Telemetry providers. Every provider degrades to a no-op when disabled.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdownTelemetry(tracerProvider.Shutdown, log, "tracer")

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdownTelemetry(meterProvider.Shutdown, log, "meter")

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer shutdownTelemetry(loggerProvider.Shutdown, log, "logs")

	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelCore)
		}))
	}

	if cfg.Telemetry.ProfilerEnabled {
		profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
			Enabled:         true,
			ServerAddress:   cfg.Telemetry.ProfilerEndpoint,
			ApplicationName: cfg.Telemetry.ServiceName,
		}, log)
		if err != nil {
			log.Warn("Profiler unavailable, continuing without it", zap.Error(err))
		} else {
			defer func() {
				_ = profiler.Stop()
			}()
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, gormLogLevel(cfg.Log.Level))
	dbOpts := []persistence.DatabaseOption{persistence.WithGormLogger(gormLog)}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbOpts = append(dbOpts, persistence.WithTracing())
	}
	db, err := persistence.NewDatabase(&cfg.Database, dbOpts...)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	countyRepo := persistence.NewGormCountyRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	imageRepo := persistence.NewGormImageRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
	} else {
		log.Warn("Redis not configured, using in-memory token blacklist")
		blacklist = auth.NewInMemoryTokenBlacklist()
	}
	oidcProvider := oidc.NewGoogleProvider(cfg.OIDC)

	// Order notification channels
	var channels []notification.Notifier
	if cfg.SMS.Enabled {
		channels = append(channels, notification.NewSMSNotifier(cfg.SMS))
	}
	if cfg.Email.Enabled {
		channels = append(channels, notification.NewEmailNotifier(cfg.Email))
	}
	var notifier notification.Notifier = notification.NoopNotifier{}
	if len(channels) > 0 {
		notifier = notification.NewCompositeNotifier(channels...)
	} else {
		log.Warn("No notification channel configured, order confirmations are discarded")
	}

	// Object storage for product images
	var objects storage.ObjectStorageService
	if cfg.Storage.Enabled {
		objects, err = storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
	} else {
		log.Warn("Object storage not configured, image uploads are disabled")
		objects = storage.NewStubObjectStorage()
	}

	var businessMetrics *telemetry.BusinessMetrics
	if meterProvider.IsEnabled() {
		businessMetrics, err = telemetry.NewBusinessMetrics(meterProvider.Meter("business"), log)
		if err != nil {
			log.Warn("Business metrics unavailable", zap.Error(err))
		}
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, oidcProvider, blacklist, log)
	userService := identityapp.NewUserService(userRepo)
	storeService := storeapp.NewStoreService(storeRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, storeRepo)
	countyService := catalogapp.NewCountyService(countyRepo, storeRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, storeRepo, log)
	imageService := catalogapp.NewImageService(imageRepo, productRepo, storeRepo, objects, log)
	customerService := partnerapp.NewCustomerService(customerRepo, storeRepo)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, customerRepo, storeRepo, notifier, businessMetrics, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	storeHandler := handler.NewStoreHandler(storeService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	countyHandler := handler.NewCountyHandler(countyService)
	productHandler := handler.NewProductHandler(productService)
	imageHandler := handler.NewImageHandler(imageService)
	customerHandler := handler.NewCustomerHandler(customerService)
	orderHandler := handler.NewOrderHandler(orderService)
	systemHandler := handler.NewSystemHandler()

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.RateLimit(middleware.NewRateLimiter(300, time.Minute)))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.IsEnabled(),
		})...)
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
	}

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/google",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
		},
		Logger: log,
	}))

	authGroup := router.NewDomainGroup("auth", "/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/google", authHandler.GoogleRedirect)
	authGroup.POST("/google", authHandler.GoogleLogin)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.POST("/deactivate", authHandler.Deactivate)

	usersGroup := router.NewDomainGroup("users", "/users")
	usersGroup.GET("", userHandler.List)
	usersGroup.GET("/:id", userHandler.GetByID)
	usersGroup.GET("/email/:email", userHandler.GetByEmail)

	storesGroup := router.NewDomainGroup("stores", "/stores")
	storesGroup.POST("", storeHandler.Create)
	storesGroup.GET("", storeHandler.List)
	storesGroup.GET("/:store_id", storeHandler.GetByID)
	storesGroup.PATCH("/:store_id", storeHandler.Update)
	storesGroup.DELETE("/:store_id", storeHandler.Delete)

	categories := storesGroup.Group("categories", "/:store_id/categories")
	categories.POST("", categoryHandler.Create)
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.GetByID)
	categories.PATCH("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	counties := storesGroup.Group("counties", "/:store_id/counties")
	counties.POST("", countyHandler.Create)
	counties.GET("", countyHandler.List)
	counties.GET("/:id", countyHandler.GetByID)
	counties.PATCH("/:id", countyHandler.Update)
	counties.DELETE("/:id", countyHandler.Delete)

	products := storesGroup.Group("products", "/:store_id/products")
	products.POST("", productHandler.Create)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.GetByID)
	products.PATCH("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	images := storesGroup.Group("images", "/:store_id/images")
	images.POST("/upload-url", imageHandler.GenerateUploadURL)
	images.POST("", imageHandler.Create)
	images.GET("", imageHandler.List)
	images.GET("/:id", imageHandler.GetByID)
	images.DELETE("/:id", imageHandler.Delete)

	customers := storesGroup.Group("customers", "/:store_id/customers")
	customers.POST("", customerHandler.Create)
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.GetByID)
	customers.PATCH("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)

	orders := storesGroup.Group("orders", "/:store_id/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.GetByID)
	orders.PATCH("/:id", orderHandler.Update)
	orders.DELETE("/:id", orderHandler.Delete)

	systemGroup := router.NewDomainGroup("system", "/system")
	systemGroup.GET("/ping", systemHandler.Ping)
	systemGroup.GET("/info", systemHandler.GetSystemInfo)

	r.Register(authGroup).
		Register(usersGroup).
		Register(storesGroup).
		Register(systemGroup).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// healthHandler reports liveness of the service and its database
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "ok",
		})
	}
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn", "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

func shutdownTelemetry(shutdown func(context.Context) error, log *zap.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
	}
}
