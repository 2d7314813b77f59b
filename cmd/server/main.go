package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printmitra-be/internal/config"
	"printmitra-be/internal/db"
	"printmitra-be/internal/dispatch"
	"printmitra-be/internal/httpapi"
	"printmitra-be/internal/logger"
	"printmitra-be/internal/message"
	"printmitra-be/internal/metrics"
	"printmitra-be/internal/notification"
	"printmitra-be/internal/order"
	"printmitra-be/internal/shop"
	"printmitra-be/internal/storage"
	"printmitra-be/internal/user"
	"printmitra-be/internal/ws"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	loc, err := time.LoadLocation(cfg.ShopTimezone)
	if err != nil {
		logger.L().Fatal("invalid shop timezone", zap.String("tz", cfg.ShopTimezone), zap.Error(err))
	}

	userRepo := user.NewRepository(database)
	shopRepo := shop.NewRepository(database)
	orderRepo := order.NewRepository(database)
	messageRepo := message.NewRepository(database)
	notificationRepo := notification.NewRepository(database)

	realtimeStats := &metrics.Realtime{}
	registry := ws.NewRegistry(realtimeStats)
	dispatcher := dispatch.New(registry, shopRepo, notificationRepo)

	bucket := storage.NewClient(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket)
	cleaner := storage.NewCleaner(orderRepo, messageRepo, bucket)

	users := user.NewService(userRepo)
	if err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.L().Fatal("failed to seed admin account", zap.Error(err))
	}

	api := &httpapi.API{
		Users:         users,
		Shops:         shop.NewService(shopRepo, loc),
		Orders:        order.NewService(orderRepo, shopRepo, dispatcher, cleaner, loc),
		Messages:      message.NewService(messageRepo, orderRepo, shopRepo, dispatcher),
		Notifications: notificationRepo,
		Realtime:      ws.NewHandler(registry),
	}

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.L().Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Warn("graceful shutdown incomplete", zap.Error(err))
	}
}
