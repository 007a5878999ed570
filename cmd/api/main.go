// Package main is the entry point for the account service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-platform/account-service/internal/config"
	"github.com/portfolio-platform/account-service/internal/handlers"
	"github.com/portfolio-platform/account-service/internal/middleware"
	"github.com/portfolio-platform/account-service/internal/models"
	"github.com/portfolio-platform/account-service/internal/repository"
	"github.com/portfolio-platform/account-service/internal/routes"
	"github.com/portfolio-platform/account-service/internal/service"
	"github.com/portfolio-platform/account-service/pkg/database"
	pkgredis "github.com/portfolio-platform/account-service/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.Connect(database.PostgresConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  "disable",
		TimeZone: "UTC",
	})
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Redis is optional; without it FindByID always hits the database.
	var redisClient *goredis.Client
	if cfg.RedisHost != "" {
		redisClient, err = pkgredis.NewClient(context.Background(), cfg)
		if err != nil {
			return err
		}
	}

	userRepo := repository.NewUserRepository(db)
	if redisClient != nil {
		userRepo = repository.NewCachedUserRepository(userRepo, redisClient)
	}

	hasher := service.NewPasswordHasher(cfg.BcryptCost, cfg.HashWorkers)
	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(userRepo, hasher, tokenService)
	guard := middleware.NewGuard(tokenService, userRepo)

	h := routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService, logger),
		User:   handlers.NewUserHandler(authService, logger),
		Admin:  handlers.NewAdminHandler(authService, logger),
		Health: handlers.NewHealthHandler(db, redisClient),
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	routes.Setup(router, h, guard, cfg, logger)

	logger.Info("starting account service", zap.String("port", cfg.Port))
	return router.Run(":" + cfg.Port)
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
