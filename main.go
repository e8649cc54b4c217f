package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "fleetlog/internal/config"
	router "fleetlog/internal/http"
	"fleetlog/internal/repositories"
	"fleetlog/internal/storage"
	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	log := utils.NewLogger(env.AppEnv, env.LogLevel)
	defer func() { _ = log.Sync() }()

	db, err := intconfig.OpenDB(env)
	if err != nil {
		log.Fatal("database unavailable", zap.String("driver", env.DBDriver), zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if env.AuthEnabled() {
		if env.AdminPassword == "" {
			log.Warn("JWT_SECRET is set but ADMIN_PASSWORD is empty; no admin account seeded")
		} else if err := (repositories.UserRepository{DB: db}).EnsureAdmin(ctx, env.AdminUser, env.AdminPassword); err != nil {
			log.Fatal("seed admin user", zap.Error(err))
		}
	}

	store, err := storage.New(ctx, env)
	cancel()
	if err != nil {
		log.Fatal("document storage unavailable", zap.Error(err))
	}

	r, err := router.NewRouter(db, store, env, log)
	if err != nil {
		log.Fatal("build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", env.AppAddr), zap.String("db", env.DBDriver),
			zap.Bool("auth", env.AuthEnabled()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
		return
	}

	log.Info("server stopped")
}
