package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pharmadesk/internal/buildinfo"
	"github.com/dmitrijs2005/pharmadesk/internal/devapi"
	"github.com/dmitrijs2005/pharmadesk/internal/logging"
	"github.com/dmitrijs2005/pharmadesk/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := devapi.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Backend: "slog",
		Level:   cfg.LogLevel,
		Format:  "json",
		Output:  os.Stdout,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	shutdown := telemetry.Setup(ctx, "pharmadesk-devapi", cfg.OTLPEndpoint, cfg.OTLPInsecure, logger)
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "telemetry shutdown", "error", err)
		}
	}()

	srv, err := devapi.New(cfg, logger)
	if err != nil {
		logger.Error(ctx, "init failed", "error", err)
		return
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
	}
}
