package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"webhook-receiver/internal/config"
	"webhook-receiver/internal/handler"
	"webhook-receiver/internal/metrics"
	"webhook-receiver/internal/repository"
	"webhook-receiver/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(config.GetLogLevel())

	addr := config.GetListenAddr()
	redisCfg := config.GetRedisConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// optional redis mirror
	var (
		mirror      service.Mirror
		healthCheck handler.HealthChecker
		redisMirror *repository.RedisMirror
	)
	if redisCfg.Addr != "" {
		var err error
		redisMirror, err = repository.NewRedisMirror(ctx, redisCfg)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize redis mirror")
		}
		mirror = redisMirror
		healthCheck = redisMirror
		logger.WithField("channel", redisMirror.Channel()).Info("Mirroring payloads to redis")
	}

	m := metrics.New()
	payloadService := service.NewPayloadService(service.NewPayloadPrinter(os.Stdout), mirror, m, logger)
	h := handler.NewHandler(logger, payloadService, healthCheck, config.GetMaxBodyBytes())

	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", h.WebhookHandler)
	mux.HandleFunc("/health", h.HealthHandler)
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server ListenAndServe error")
		}
	}()

	logger.WithField("addr", addr).Info("Webhook receiver started")

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("server forced to shutdown")
	} else {
		logger.Info("Server stopped gracefully")
	}

	payloadService.Wait()

	if redisMirror != nil {
		if err := redisMirror.Close(); err != nil {
			logger.WithError(err).Warn("redis mirror close error")
		} else {
			logger.Info("Redis mirror closed")
		}
	}
}
