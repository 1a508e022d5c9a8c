package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devjobs-backend/config"
	_ "devjobs-backend/docs" // Important for Swagger
	v1 "devjobs-backend/internal/delivery/http/v1"
	"devjobs-backend/internal/repository/postgres"
	"devjobs-backend/internal/usecase"
	"devjobs-backend/internal/vocabulary"
	"devjobs-backend/pkg/auth"
	"devjobs-backend/pkg/database"
	"devjobs-backend/pkg/logger"
	"devjobs-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           DevJobs Backend API
// @version         1.0
// @description     Job board backend with token auth and tagged job postings.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting devjobs backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional job read cache)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable - job reads will skip the cache", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	vocab := vocabulary.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	authUC := usecase.NewAuthUsecase(userRepo, tokens, cfg.BcryptCost)
	jobUC := usecase.NewJobUsecase(jobRepo, vocab, validate, redis.Client(), time.Duration(cfg.CacheTTLSeconds)*time.Second)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC: authUC,
		JobUC:  jobUC,
		Tokens: tokens,
		Config: cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
