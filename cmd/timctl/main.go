package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/tim-encrypted-storage/internal/adapter"
	"github.com/MKhiriev/tim-encrypted-storage/internal/app"
	"github.com/MKhiriev/tim-encrypted-storage/internal/client"
	"github.com/MKhiriev/tim-encrypted-storage/internal/config"
	"github.com/MKhiriev/tim-encrypted-storage/internal/keystore"
	"github.com/MKhiriev/tim-encrypted-storage/internal/logger"
	"github.com/MKhiriev/tim-encrypted-storage/internal/metrics"
	"github.com/MKhiriev/tim-encrypted-storage/internal/service"
	"github.com/MKhiriev/tim-encrypted-storage/internal/store"
	"github.com/MKhiriev/tim-encrypted-storage/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.NewClientLogger("timctl", "")

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Err(err).Msg("error getting configs")
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.App.MetricsEnabled {
		m = metrics.New()
	}

	storages, err := store.NewStorages(ctx, cfg.Storage.DB.DSN, log)
	if err != nil {
		log.Err(err).Msg("create secure storage")
		fmt.Fprintln(os.Stderr, "error:", app.MsgStorageFailed)
		return 1
	}
	defer storages.Close()

	keystoreDB := storages.DB
	if cfg.Storage.Keystore.DSN != cfg.Storage.DB.DSN {
		keystoreDB, err = store.NewConnectSQLite(ctx, cfg.Storage.Keystore.DSN, log)
		if err != nil {
			log.Err(err).Msg("create keystore database")
			fmt.Fprintln(os.Stderr, "error:", app.MsgStorageFailed)
			return 1
		}
		defer keystoreDB.Close()
	}
	ks := keystore.NewSQLiteKeystore(keystoreDB, cfg.Storage.Keystore.AuthWindow, log)

	keyService, err := adapter.NewHTTPKeyService(cfg.Adapter, log, m)
	if err != nil {
		log.Err(err).Msg("create key service adapter")
		fmt.Fprintln(os.Stderr, "error:", err)
		return 2
	}

	services, err := service.NewServices(storages.SecureStorage, keyService, ks, cfg.App, log, m)
	if err != nil {
		log.Err(err).Msg("create services")
		fmt.Fprintln(os.Stderr, "error:", app.MsgInternalError)
		return 1
	}

	timctl, err := client.NewApp(services, os.Stdin, os.Stdout, os.Stderr, m, log,
		client.WithBuildInfo(buildInfo()))
	if err != nil {
		log.Err(err).Msg("init client app error")
		return 1
	}

	if err = timctl.Run(ctx, cfg.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", app.Message(err))
		return 1
	}
	return 0
}

func buildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
