package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/imuws/internal/config"
	"github.com/aescanero/imuws/internal/logger"
	"github.com/aescanero/imuws/pkg/adapters/events/memory"
	eventsredis "github.com/aescanero/imuws/pkg/adapters/events/redis"
	"github.com/aescanero/imuws/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/imuws/pkg/api/http"
	"github.com/aescanero/imuws/pkg/api/websocket"
	"github.com/aescanero/imuws/pkg/ports"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting IMU development server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	var (
		sink        ports.ReadingSink
		redisClient *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		log.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

		sink = eventsredis.NewStreamsReadingSink(redisClient, cfg.Redis.StreamMaxLen, log)
	} else {
		log.Info("using in-memory reading sink", zap.Int("per_device", cfg.Server.RecentReadings))
		sink = memory.NewInMemoryReadingSink(cfg.Server.RecentReadings)
	}

	metricsCollector := prometheus.NewCollector()

	httpServer := http.NewServer(&http.Config{
		Port:     cfg.Server.HTTPPort,
		Sink:     sink,
		Gatherer: metricsCollector.Registry(),
		Logger:   log,
	})
	httpServer.SetupWebSocket(websocket.NewHandler(sink, metricsCollector, cfg.Server.PingGreeting, log))

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("IMU development server started", zap.String("addr", cfg.GetHTTPAddr()))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := sink.Close(); err != nil {
		log.Error("sink close error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Redis close error", zap.Error(err))
		}
	}

	log.Info("IMU development server shut down complete")
}
