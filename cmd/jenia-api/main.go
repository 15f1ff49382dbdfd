package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XrOne/jenia-portfolio/internal/config"
	"github.com/XrOne/jenia-portfolio/internal/database"
	"github.com/XrOne/jenia-portfolio/internal/handlers"
	"github.com/XrOne/jenia-portfolio/internal/identity"
	"github.com/XrOne/jenia-portfolio/internal/logging"
	"github.com/XrOne/jenia-portfolio/internal/middleware"
	"github.com/XrOne/jenia-portfolio/internal/server"
	"github.com/XrOne/jenia-portfolio/internal/services"
	"github.com/XrOne/jenia-portfolio/internal/session"
	"github.com/XrOne/jenia-portfolio/internal/storage"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBConnectTimeout, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	objects := storage.New(cfg.Storage, logger)
	provider := identity.NewSupabaseProvider(cfg.Identity)
	signer := session.NewSigner(cfg.Session.Secret, cfg.Session.TTL)

	userService := services.NewUserService(db, cfg.OwnerOpenID, logger)
	workflowService := services.NewWorkflowService(db, logger)
	missionService := services.NewMissionService(db, workflowService, logger)
	videoService := services.NewVideoService(db, objects, logger)
	experienceService := services.NewExperienceService(db, logger)
	offeringService := services.NewOfferingService(db, logger)
	uploadService := services.NewUploadService(objects, cfg.Upload, logger)

	openAPIHandler, err := handlers.NewOpenAPIHandler()
	if err != nil {
		logger.Fatal("failed to build openapi document", zap.Error(err))
	}

	secure := cfg.IsProduction()
	router := server.NewRouter(server.Handlers{
		Auth:       handlers.NewAuthHandler(provider, userService, signer, cfg.Session.CookieName, secure, logger),
		Videos:     handlers.NewVideoHandler(videoService, logger),
		Missions:   handlers.NewMissionHandler(missionService, workflowService, logger),
		Experience: handlers.NewExperienceHandler(experienceService, logger),
		Offerings:  handlers.NewOfferingHandler(offeringService, logger),
		Users:      handlers.NewUserHandler(userService, logger),
		Uploads:    handlers.NewUploadHandler(uploadService, logger),
		Health:     handlers.NewHealthHandler(db.Pool, logger),
		OpenAPI:    openAPIHandler,
	}, server.Options{
		Release:     cfg.IsProduction(),
		CORSOrigins: cfg.CORSOrigins,
		Session:     middleware.Session(signer, cfg.Session.CookieName, provider, userService, logger),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           middleware.RequestLogger(logger, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
