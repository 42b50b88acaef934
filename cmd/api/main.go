package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/marginalia-api/api/swagger"
	"github.com/noah-isme/marginalia-api/internal/handler"
	"github.com/noah-isme/marginalia-api/internal/middleware"
	"github.com/noah-isme/marginalia-api/internal/repository"
	"github.com/noah-isme/marginalia-api/internal/service"
	"github.com/noah-isme/marginalia-api/pkg/cache"
	"github.com/noah-isme/marginalia-api/pkg/config"
	"github.com/noah-isme/marginalia-api/pkg/database"
	"github.com/noah-isme/marginalia-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/marginalia-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/marginalia-api/pkg/middleware/requestid"
)

// @title Marginalia API
// @version 0.1.0
// @description Cookie-session backend for capturing and annotating web selections
// @BasePath /v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis only accelerates revocation lookups; the server runs without it.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, revocation lookups hit postgres directly", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	tokenRepo := repository.NewTokenRepository(db)
	revocations := repository.NewCachedTokenRepository(tokenRepo, redisClient, logr)
	accountRepo := repository.NewAccountRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	validate := validator.New()
	metrics := service.NewMetricsService()

	authService := service.NewAuthService(revocations, accountRepo, validate, logr, metrics, service.AuthConfig{
		AccessSecret:    cfg.JWT.AccessSecret,
		RefreshSecret:   cfg.JWT.RefreshSecret,
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
		BcryptCost:      cfg.Password.BcryptCost,
	})
	accountService := service.NewAccountService(accountRepo, profileRepo, authService, validate, logr, service.AccountConfig{
		MinPasswordLength: cfg.Password.MinLength,
	})
	selectionService := service.NewSelectionService(selectionRepo, validate, logr)
	commentService := service.NewCommentService(commentRepo, selectionService, validate, logr)

	authHandler := handler.NewAuthHandler(authService, cfg.Cookie)
	accountHandler := handler.NewAccountHandler(accountService)
	selectionHandler := handler.NewSelectionHandler(selectionService)
	commentHandler := handler.NewCommentHandler(commentService)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/accounts", accountHandler.Create)

		protected := api.Group("", middleware.RequiresAuth(authService, metrics))
		{
			protected.POST("/auth/logout", authHandler.Logout)

			protected.GET("/accounts/me", accountHandler.Me)
			protected.DELETE("/accounts/me", accountHandler.Remove)

			protected.POST("/selections", selectionHandler.Create)
			protected.GET("/selections/:id", selectionHandler.Retrieve)
			protected.DELETE("/selections/:id", selectionHandler.Remove)

			protected.GET("/selections/:id/comments", commentHandler.List)
			protected.POST("/selections/:id/comments", commentHandler.Create)
			protected.DELETE("/comments/:id", commentHandler.Remove)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cleanup *service.CleanupService
	if cfg.Cleanup.Enabled {
		cleanup = service.NewCleanupService(tokenRepo, logr, cfg.Cleanup.Interval)
		cleanup.Start(ctx)
		defer cleanup.Stop()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
