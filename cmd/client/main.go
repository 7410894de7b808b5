package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pharmadesk/internal/buildinfo"
	"github.com/dmitrijs2005/pharmadesk/internal/client/cli"
	"github.com/dmitrijs2005/pharmadesk/internal/client/config"
	"github.com/dmitrijs2005/pharmadesk/internal/logging"
	"github.com/dmitrijs2005/pharmadesk/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Backend: cfg.LogBackend,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  os.Stderr,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	shutdown := telemetry.Setup(ctx, "pharmadesk-client", cfg.OTLPEndpoint, cfg.OTLPInsecure, logger)
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "telemetry shutdown", "error", err)
		}
	}()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "init failed", "error", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
