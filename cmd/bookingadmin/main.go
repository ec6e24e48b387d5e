package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"booking-admin/config"
	"booking-admin/internal/api"
	"booking-admin/internal/bookingapi"
	"booking-admin/internal/dashboard"
	"booking-admin/internal/logger"
	"booking-admin/internal/mw"
	"booking-admin/internal/notification"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("configuration loaded", zap.String("path", configPath))

	client, err := bookingapi.NewClient(cfg.Upstream, log.Named("bookingapi"))
	if err != nil {
		log.Fatal("failed to create bookings api client", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := notification.NewRegistry()
	var (
		notifier       dashboard.Notifier
		webpushOptions *webpush.Options
	)
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, registry, webpushOptions, log.Named("push"))
		pool.Start(ctx)
		notifier = pool
		log.Info("push notices enabled", zap.Int("workers", cfg.WorkerPool.Size))
	} else {
		log.Info("VAPID keys not configured, push notices disabled")
	}

	controllerLog := log.Named("dashboard")
	sessions := mw.NewSessions(cfg.Server.SessionTTL, cfg.Server.SecureCookies, func() *dashboard.Controller {
		return dashboard.NewController(client, notifier, controllerLog)
	})

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := api.NewRouter(cfg.Server, sessions, registry, webpushOptions, log)
	if err != nil {
		log.Fatal("failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   dashboard.WriteTimeout(cfg.Upstream.Timeout),
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info("HTTP server starting", zap.Int("port", cfg.Server.Port), zap.String("upstream", cfg.Upstream.BaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("shutdown signal received, stopping services")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server Shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}
