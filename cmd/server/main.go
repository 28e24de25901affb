package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "ideahub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ideahub/internal/auth"
	"ideahub/internal/cache"
	"ideahub/internal/config"
	"ideahub/internal/db"
	"ideahub/internal/handler"
	"ideahub/internal/model"
	"ideahub/internal/notify"
	"ideahub/internal/repository"
	"ideahub/internal/router"
	"ideahub/internal/service"
)

// @title IdeaHub API
// @version 1.0
// @description Startup idea submission and review platform with founder/admin roles, JWT authentication and live notifications.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.ReviewLog{},
			&model.Idea{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Idea{},
		&model.ReviewLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("Warning: redis unreachable, caching disabled: %v", err)
	}

	// Notification hub for live idea events
	hub := notify.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	ideaRepo := repository.NewIdeaRepository(gormDB)
	reviewLogRepo := repository.NewReviewLogRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	ideaService := service.NewIdeaService(ideaRepo, hub, cacheClient)
	reviewService := service.NewReviewService(ideaRepo, reviewLogRepo, userRepo, hub, cacheClient)
	analyticsService := service.NewAnalyticsService(userRepo, ideaRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(userService)
	ideaHandler := handler.NewIdeaHandler(ideaService)
	adminHandler := handler.NewAdminHandler(ideaService, reviewService, userService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	wsHandler := handler.NewWSHandler(hub, jwtService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		profileHandler,
		ideaHandler,
		adminHandler,
		analyticsHandler,
		wsHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
