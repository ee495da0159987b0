package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-fin-track/internal/client"
	"github.com/MKhiriev/go-fin-track/internal/config"
	"github.com/MKhiriev/go-fin-track/internal/logger"
	"github.com/MKhiriev/go-fin-track/internal/service"
	"github.com/MKhiriev/go-fin-track/internal/store"
	"github.com/MKhiriev/go-fin-track/internal/tui"
	"github.com/MKhiriev/go-fin-track/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "go-fin-track: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewClientLogger("go-fin-track-client", cfg.Log.File)
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Error().Err(err).Msg("create local storage")
		return fmt.Errorf("create local storage: %w", err)
	}
	defer storages.Close()

	services, err := service.NewClientServices(storages, cfg.Adapter, log)
	if err != nil {
		log.Error().Err(err).Msg("create client services")
		return fmt.Errorf("create client services: %w", err)
	}

	ui := tui.New(services, buildInfo(), cfg.App.Locale, log)

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		return fmt.Errorf("init client app: %w", err)
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		return err
	}
	return nil
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
