package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"userauth/docs"
	"userauth/internal/auth"
	"userauth/internal/cache"
	"userauth/internal/config"
	"userauth/internal/db"
	"userauth/internal/handler"
	"userauth/internal/logging"
	"userauth/internal/model"
	"userauth/internal/repository"
	"userauth/internal/router"
	"userauth/internal/service"
)

// @title User Registration API
// @version 1.0
// @description User registration and login with bcrypt password hashing and JWT issuance.
// @host localhost:3001
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	bootLog := logging.New("info")

	cfg, err := config.Load()
	if err != nil {
		bootLog.WithError(err).Fatal("load config")
	}
	logger := logging.New(cfg.LogLevel)

	gormDB, err := db.NewMySQL(db.OptionsFromConfig(cfg))
	if err != nil {
		logger.WithError(err).Fatal("database init")
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		logger.WithError(err).Fatal("auto-migrate")
	}
	logger.WithField("table", model.UserTableName).Info("database connected and tables synced")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(context.Background()); err != nil {
			logger.WithError(err).Warn("redis unreachable, lookups go straight to the database")
		}
	}

	userRepo := repository.NewCachedUserRepository(repository.NewUserRepository(gormDB), cacheClient)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	authHandler := handler.NewAuthHandler(authService, logger)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger, authHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	logger.WithField("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").Info("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		logger.WithField("addr", addr).Info("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server start")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}
