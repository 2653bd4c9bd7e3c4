package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mightcoding/ISSAConnect/internal/config"
	"github.com/mightcoding/ISSAConnect/internal/database"
	"github.com/mightcoding/ISSAConnect/internal/di"
	"github.com/mightcoding/ISSAConnect/internal/logger"
	"github.com/mightcoding/ISSAConnect/internal/middleware"
	"github.com/mightcoding/ISSAConnect/internal/redis"
	"github.com/mightcoding/ISSAConnect/internal/telemetry"
)

const serviceName = "issaconnect"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       "info",
		ServiceName: serviceName,
		Development: cfg.IsDevelopment(),
	}
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting ISSAConnect",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize tracing
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  10 * time.Second,
		MaxRetries:      3,
		RetryInterval:   2 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()
	appLog.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int32("max_conns", dbCfg.MaxConns),
	)

	// Redis is optional. Without it sessions live in Postgres.
	redisClient, err := redis.NewClient(ctx, &redis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	})
	if err != nil {
		appLog.Warn("Redis unavailable, falling back to Postgres sessions", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info("Redis connected", zap.String("addr", fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)))
	}

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:     db,
		Redis:  redisClient,
		Config: cfg,
	})

	router := setupRouter(cfg, container)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Telemetry shutdown failed", zap.Error(err))
	}

	appLog.Info("Shutdown complete")
}

func setupRouter(cfg *config.Config, container *di.Container) *gin.Engine {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger.Get()))
	router.Use(telemetry.TracingMiddleware(serviceName))

	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", container.AuthHandler.Register)
			auth.POST("/login", container.AuthHandler.Login)
			auth.POST("/refresh", container.AuthHandler.Refresh)
			auth.POST("/logout", container.AuthHandler.Logout)
		}

		protected := v1.Group("")
		protected.Use(middleware.JWTMiddleware(&middleware.JWTConfig{
			AuthService: container.AuthService,
		}))
		{
			protected.GET("/auth/me", container.AuthHandler.Me)
			protected.PUT("/auth/me", container.AuthHandler.UpdateMe)

			news := protected.Group("/news")
			{
				news.GET("", container.NewsHandler.List)
				news.POST("", container.NewsHandler.Create)
				news.GET("/:id", container.NewsHandler.Get)
				news.PUT("/:id", container.NewsHandler.Update)
				news.DELETE("/:id", container.NewsHandler.Delete)
			}

			events := protected.Group("/events")
			{
				events.GET("", container.EventHandler.List)
				events.POST("", container.EventHandler.Create)
				events.GET("/:id", container.EventHandler.Get)
				events.PUT("/:id", container.EventHandler.Update)
				events.DELETE("/:id", container.EventHandler.Delete)

				events.POST("/:id/register", container.RegistrationHandler.Register)
				events.DELETE("/:id/unregister", container.RegistrationHandler.Unregister)
				events.GET("/:id/registrations", container.RegistrationHandler.ListRegistrations)
				events.DELETE("/:id/registrations/:userId", container.RegistrationHandler.RemoveRegistrant)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequirePrivileged())
			{
				admin.GET("/events", container.RegistrationHandler.EventsOverview)
				admin.GET("/users", container.AdminHandler.ListUsers)
				admin.PATCH("/users/:id", container.AdminHandler.UpdatePermissions)
				admin.PUT("/users/:id/avatar", container.AdminHandler.UpdateAvatar)
				admin.DELETE("/users/:id/avatar", container.AdminHandler.DeleteAvatar)
			}
		}
	}

	return router
}
