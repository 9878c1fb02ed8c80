package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"pizzabot/internal/config"
	"pizzabot/internal/logger"
	"pizzabot/internal/models"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", -1, "Metrics server port, 0 disables it (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort >= 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithCancel(logger.WithLogger(context.Background(), log))
	defer cancel()

	app, err := newApp(ctx, cfg, log)
	if err != nil {
		if models.IsConfiguration(err) {
			log.WithError(err).Fatal("Invalid menu or localization setup, aborting")
		}
		log.WithError(err).Fatal("Failed to start")
	}
	defer app.Close()

	// Start metrics server
	var metricsServer *http.Server
	if cfg.Server.MetricsPort > 0 {
		metricsServer = startMetricsServer(log, cfg.Server.MetricsPort, app.server.Metrics().Registry())
	}

	// Start API server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: app.server.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("API server shutdown error")
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Error("Metrics server shutdown error")
			}
		}

		cancel()
	}()

	log.WithField("port", cfg.Server.Port).Info("Starting API server")
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.WithError(err).Fatal("API server error")
	}
}

func startMetricsServer(log logrus.FieldLogger, port int, registry *prometheus.Registry) *http.Server {
	metricsRouter := gin.New()
	metricsRouter.Use(gin.Recovery())
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	go func() {
		log.WithField("port", port).Info("Starting metrics server")
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			log.WithError(err).Error("Metrics server error")
		}
	}()
	return metricsServer
}
