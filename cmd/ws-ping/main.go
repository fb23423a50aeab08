package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aescanero/imuws/internal/application/uplink"
	"github.com/aescanero/imuws/internal/config"
	"github.com/aescanero/imuws/internal/logger"
	"github.com/aescanero/imuws/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/imuws/pkg/adapters/wsclient"
	"github.com/aescanero/imuws/pkg/imu"

	"go.uber.org/zap"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.LoadClient()
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

	log.Debug("starting ws-ping",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	if err := run(context.Background(), cfg, log, os.Stdout); err != nil {
		log.Error("ping failed", zap.String("host", cfg.Client.Host), zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

// run performs one ping exchange and writes the transcript to out
func run(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	metricsCollector := prometheus.NewCollector()

	svc := uplink.NewService(&uplink.Config{
		Scheme: cfg.Client.Scheme,
		Host:   cfg.Client.Host,
		Client: wsclient.NewClient(&wsclient.Config{
			HandshakeTimeout: cfg.Client.HandshakeTimeout,
			Logger:           log,
		}),
		Metrics: metricsCollector,
		Out:     out,
		Logger:  log,
	})

	_, err := svc.Ping(ctx, imu.PingRequest{Image: cfg.Client.PingImage})

	if cfg.Client.MetricsFile != "" {
		if werr := metricsCollector.WriteTextfile(cfg.Client.MetricsFile); werr != nil {
			log.Error("failed to write metrics", zap.Error(werr))
		}
	}

	return err
}
