package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elisa-a-v/courtlistener/internal/config"
	"github.com/elisa-a-v/courtlistener/internal/logger"
	"github.com/elisa-a-v/courtlistener/internal/recap"
	"github.com/elisa-a-v/courtlistener/internal/repository"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "courtlistener-recapimport",
	})
	logger.SetDefaultLogger(appLogger)

	courtID := flag.String("court", "", "Restrict the import to one court ID")
	skipUntil := flag.String("skip-until", "", "Resume a full run at this court ID (inclusive)")
	total := flag.Int("total", 0, "Maximum number of documents to ingest; zero means no cap")
	minInterval := flag.Duration("min-interval", time.Second, "Minimum spacing between extraction requests")
	useReplica := flag.Bool("use-replica", false, "Read candidate documents from the replica database")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}
	readDB := db
	if *useReplica {
		replica, err := repository.InitReplicaDB(&cfg.Database)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize replica database")
		}
		if replica == nil {
			appLogger.Fatal("--use-replica set but no replica is configured")
		}
		readDB = replica
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	appLogger.WithFields(logger.Fields{
		"court":        *courtID,
		"skip_until":   *skipUntil,
		"total":        *total,
		"min_interval": minInterval.String(),
	}).Info("Starting RECAP opinion import")

	// Reads scan the replica when configured; cluster and opinion writes
	// always hit the primary.
	importer := recap.NewImporter(
		repository.NewCourtRepository(readDB),
		repository.NewOpinionRepository(db),
		recap.NewExtractor(&cfg.Extractor),
	)

	ingested, err := importer.Run(ctx, recap.Options{
		CourtID:     *courtID,
		SkipUntil:   *skipUntil,
		TotalCount:  *total,
		MinInterval: *minInterval,
	})
	if err != nil {
		appLogger.WithError(err).WithField("ingested", ingested).Fatal("RECAP import failed")
	}

	appLogger.WithField("ingested", ingested).Info("RECAP import completed")
}
