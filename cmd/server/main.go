package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/app"
	"github.com/ogurasousui/funcionarios-api/internal/platform/config"
	"github.com/ogurasousui/funcionarios-api/internal/platform/logger"
	"github.com/ogurasousui/funcionarios-api/internal/platform/server"
	"github.com/ogurasousui/funcionarios-api/internal/platform/telemetry"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, lg)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			lg.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	a, err := app.New(ctx, cfg, nil, lg)
	if err != nil {
		return err
	}
	defer a.Close()

	lg.Info("starting funcionarios-api",
		zap.String("store", a.Mode),
		zap.String("http", cfg.Server.ListenAddr),
		zap.String("grpc", cfg.Server.GRPCListenAddr),
	)

	return server.New(cfg.Server, a.Handler, a.Check, lg).Run(ctx)
}
