package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"bubblemap_bot/internal/client"
	"bubblemap_bot/internal/config"
	"bubblemap_bot/internal/pkg/utils"
	"bubblemap_bot/internal/service"
	"bubblemap_bot/internal/transport/telegram"
	"bubblemap_bot/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{})
	slog.SetDefault(slog.New(slogHandler))

	// Load configuration
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Update log level from config
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			log.SetOutput(file)
		} else {
			log.Infof("Failed to log to file, using default stdout: %v", err)
		}
	}

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		zapLogger.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	// Initialize Prometheus metrics
	metrics.MustRegisterMetrics()

	// Initialize provider clients
	dexScreenerClient := client.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		cfg.DEXScreener.RateLimitPerSecond,
		cfg.DEXScreener.RateLimitBurst,
		zapLogger,
	)
	zapLogger.Info("DEXScreener client initialized")

	metadataClient := client.NewMetadataClient(
		cfg.Bubblemaps.MetadataBaseURL,
		time.Duration(cfg.Bubblemaps.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	zapLogger.Info("Bubblemaps metadata client initialized")

	renderClient := client.NewRenderClient(
		cfg.Render.BaseURL,
		time.Duration(cfg.Render.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	zapLogger.Info("Render client initialized")

	// Initialize services
	resolutionSvc := service.NewResolutionService(zapLogger, dexScreenerClient, metadataClient, renderClient)
	sessionSvc := service.NewSessionService(zapLogger)
	zapLogger.Info("Services initialized")

	// Initialize the Telegram bot
	bot, err := telegram.NewBot(botToken, cfg.Telegram, resolutionSvc, sessionSvc, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize Telegram bot", zap.Error(err))
	}

	botCtx, cancelBot := context.WithCancel(context.Background())
	defer cancelBot()
	go func() {
		if err := bot.Run(botCtx); err != nil {
			zapLogger.Error("Bot update loop exited with error", zap.Error(err))
		}
	}()

	// Initialize Gin router for the ops surface
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", "/metrics"))

	// Pprof endpoints (for debugging performance issues)
	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}
	zapLogger.Info("Pprof endpoints enabled under /debug/pprof")

	srv := &http.Server{
		Addr:         cfg.Ops.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Ops.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Ops.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Ops.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Ops server starting on port %s", cfg.Ops.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start ops server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down...")

	cancelBot()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Ops server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Bot exiting")
}
