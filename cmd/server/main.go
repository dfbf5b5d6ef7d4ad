package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"resume-builder/internal/config"
	"resume-builder/internal/server"
	infra "resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		OutputPath: cfg.Log.OutputPath,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	// infra setup
	store, closeStore, err := infra.OpenStore(ctx, cfg.Storage, lg)
	if err != nil {
		lg.Fatal("storage not available", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer closeStore()

	rasterizer := infra.NewChromedpRasterizer(infra.RasterOptions{
		ChromePath:  cfg.Render.ChromePath,
		SettleDelay: cfg.Render.SettleDelay,
		Timeout:     cfg.Render.Timeout,
	}, lg.Named("chromedp"))

	svc, err := server.NewServices(ctx, cfg, server.Deps{Rasterizer: rasterizer, Store: store, Log: lg})
	if err != nil {
		lg.Fatal("wire services", zap.Error(err))
	}

	app := server.NewApp(svc, lg)
	if err := server.Run(ctx, app, ":"+cfg.Server.Port, lg); err != nil {
		lg.Error("server failed", zap.Error(err))
		closeStore()
		os.Exit(1)
	}
}
