package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/libreria/backend/internal/application/catalog"
	inventoryapp "github.com/libreria/backend/internal/application/inventory"
	partnerapp "github.com/libreria/backend/internal/application/partner"
	tradeapp "github.com/libreria/backend/internal/application/trade"
	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/infrastructure/cache"
	"github.com/libreria/backend/internal/infrastructure/config"
	"github.com/libreria/backend/internal/infrastructure/event"
	"github.com/libreria/backend/internal/infrastructure/logger"
	"github.com/libreria/backend/internal/infrastructure/persistence"
	"github.com/libreria/backend/internal/infrastructure/telemetry"
	"github.com/libreria/backend/internal/interfaces/http/handler"
	"github.com/libreria/backend/internal/interfaces/http/middleware"
	"github.com/libreria/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	// OTLP logs pipeline, teed into the zap logger when enabled
	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry)
	if err != nil {
		panic("Failed to initialize log exporter: " + err.Error())
	}

	log, err := logger.New(cfg.Log, logProvider.Core(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Libreria Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing and profiling
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Profiling, cfg.App.Name, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && cfg.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	metrics := telemetry.NewMetrics()

	// Database
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithZapLogger(log, cfg.Log.Level, cfg.Database.SlowQuery),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", db.Driver))

	// The sqlite driver has no versioned migrations; postgres is migrated by
	// cmd/migrate.
	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:   cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBSystem:  db.Driver,
		SlowQuery: cfg.Database.SlowQuery,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Per-aggregate locks: Redis when several instances share the database
	var (
		locker      cache.KeyedLocker = cache.NewMemoryKeyedLocker()
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		locker = cache.NewRedisKeyedLocker(redisClient, cfg.Redis.LockTTL, log)
		log.Info("Redis locker enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo, locker)
	supplierService := partnerapp.NewSupplierService(supplierRepo, locker)
	orderService := tradeapp.NewOrderService(orderRepo, supplierRepo, locker)
	saleService := tradeapp.NewSaleService(saleRepo, locker)

	// Event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(telemetry.NewBusinessMetrics(metrics))

	if cfg.Inventory.DeductOnSale {
		eventBus.Subscribe(inventoryapp.NewSaleRecordedHandler(productService, log))
	}
	if cfg.Inventory.RestockOnDelivery {
		eventBus.Subscribe(inventoryapp.NewOrderDeliveredHandler(productService, log))
	}
	log.Info("Inventory handlers configured",
		zap.Bool("deduct_on_sale", cfg.Inventory.DeductOnSale),
		zap.Bool("restock_on_delivery", cfg.Inventory.RestockOnDelivery),
	)

	if cfg.Kafka.Enabled {
		forwarder := event.NewKafkaForwarder(event.NewKafkaWriter(cfg.Kafka), cfg.Kafka.TopicPrefix, log)
		eventBus.Subscribe(forwarder)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing Kafka writer", zap.Error(err))
			}
		}()
		log.Info("Kafka event forwarding enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic_prefix", cfg.Kafka.TopicPrefix),
		)
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	productService.SetEventPublisher(eventBus)
	supplierService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	saleService.SetEventPublisher(eventBus)

	// HTTP handlers
	bookHandler := handler.NewProductHandler(productService, catalog.KindBook)
	magazineHandler := handler.NewProductHandler(productService, catalog.KindMagazine)
	schoolSupplyHandler := handler.NewProductHandler(productService, catalog.KindSchoolSupply)
	orderHandler := handler.NewOrderHandler(orderService)
	saleHandler := handler.NewSaleHandler(saleService)
	supplierHandler := handler.NewSupplierHandler(supplierService)

	checks := []handler.HealthCheck{{Name: "database", Ping: db.Ping}}
	if redisClient != nil {
		checks = append(checks, handler.HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	healthHandler := handler.NewHealthHandler(checks...)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	defaultTenant, err := uuid.Parse(cfg.HTTP.DefaultTenantID)
	if err != nil {
		log.Fatal("Invalid default tenant id", zap.String("value", cfg.HTTP.DefaultTenantID), zap.Error(err))
	}

	// Middleware order matters: the request id and tenant must be in the
	// context before the access log and span attributes read them.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tenant(defaultTenant))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.AccessLog(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, tracerProvider.IsEnabled()))
	engine.Use(middleware.SpanAttributes())
	if cfg.Telemetry.MetricsEnabled {
		engine.Use(middleware.Metrics(metrics))
	}
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	stopSweeper := make(chan struct{})
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		go rateLimiter.RunSweeper(stopSweeper)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Endpoints outside API versioning
	engine.GET("/health", healthHandler.Health)
	if cfg.Telemetry.MetricsEnabled {
		engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(
			router.ProductRoutes(bookHandler),
			router.ProductRoutes(magazineHandler),
			router.ProductRoutes(schoolSupplyHandler),
			router.OrderRoutes(orderHandler),
			router.SaleRoutes(saleHandler),
			router.SupplierRoutes(supplierHandler),
		).
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
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	close(stopSweeper)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down log exporter", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
