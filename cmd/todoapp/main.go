package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"todoapp/internal/auth"
	"todoapp/internal/config"
	"todoapp/internal/repository"
	"todoapp/internal/server"
	"todoapp/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	tokenManager := auth.NewTokenManager(cfg.JWT)
	mailer := service.NewLogMailer(logger)

	notificationSvc := service.NewNotificationService(notificationRepo, settingsRepo)
	authSvc := service.NewAuthService(userRepo, tokenRepo, tokenManager, mailer)
	userSvc := service.NewUserService(userRepo, settingsRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo, tagRepo)
	categorySvc := service.NewCategoryService(categoryRepo, taskRepo)
	tagSvc := service.NewTagService(tagRepo, taskRepo)
	dashboardSvc := service.NewDashboardService(taskRepo)

	srv := server.New(logger, cfg.HTTP, server.Deps{
		Auth:          authSvc,
		Users:         userSvc,
		Tasks:         taskSvc,
		Categories:    categorySvc,
		Tags:          tagSvc,
		Dashboard:     dashboardSvc,
		Notifications: notificationSvc,
		Health:        repository.NewHealth(db),
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.HTTP.Timeout,
		WriteTimeout: cfg.HTTP.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Info("server started", "address", cfg.HTTP.Address)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("shutdown: %v", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped with error: %v", err)
		}
	}
	logger.Info("shutdown complete")
}

func logLevel(raw string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
