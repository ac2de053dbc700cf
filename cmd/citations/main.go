package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/elisa-a-v/courtlistener/internal/citations"
	"github.com/elisa-a-v/courtlistener/internal/config"
	"github.com/elisa-a-v/courtlistener/internal/logger"
	"github.com/elisa-a-v/courtlistener/internal/repository"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "courtlistener-citations",
	})
	logger.SetDefaultLogger(appLogger)

	csvPath := flag.String("csv", "", "Path to the citations CSV file (citing,cited)")
	debug := flag.Bool("debug", false, "Count what would be created without writing")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *csvPath == "" {
		appLogger.Fatal("--csv is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	pairs, err := citations.LoadCSV(*csvPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load citations CSV")
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

	importer := citations.NewImporter(repository.NewCitationRepository(db), *debug)
	stats, err := importer.Run(ctx, pairs)
	if err != nil {
		appLogger.WithError(err).Fatal("Citation import failed")
	}

	appLogger.WithFields(logger.Fields{
		"total":    stats.Total,
		"created":  stats.Created,
		"existing": stats.Existing,
		"skipped":  stats.Skipped,
		"debug":    *debug,
	}).Info("Citation import completed")
}
