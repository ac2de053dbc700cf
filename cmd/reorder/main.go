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
	"github.com/elisa-a-v/courtlistener/internal/ordering"
	"github.com/elisa-a-v/courtlistener/internal/repository"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "courtlistener-reorder",
	})
	logger.SetDefaultLogger(appLogger)

	action := flag.String("action", "", "Ordering pass to run: sort-harvard or sort-columbia")
	skipUntil := flag.Int64("skip-until", 0, "Resume from this cluster ID (inclusive)")
	limit := flag.Int("limit", 0, "Maximum number of clusters to process; zero means no limit")
	delay := flag.Duration("delay", 100*time.Millisecond, "Pause between clusters to spare the database")
	xmlDir := flag.String("xml-dir", "", "Local directory holding the archived source XML files")
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	sorter := ordering.NewSorter(repository.NewOpinionRepository(db), *delay)

	var processed int
	switch *action {
	case "sort-harvard":
		processed, err = sorter.SortHarvard(ctx, *skipUntil, *limit)
	case "sort-columbia":
		if *xmlDir == "" {
			appLogger.Fatal("--xml-dir is required for sort-columbia")
		}
		processed, err = sorter.SortColumbia(ctx, *xmlDir, *skipUntil)
	default:
		appLogger.WithField("action", *action).Fatal("Unknown action")
	}
	if err != nil {
		appLogger.WithError(err).WithField("processed", processed).Fatal("Ordering run failed")
	}

	appLogger.WithFields(logger.Fields{
		"action":    *action,
		"processed": processed,
	}).Info("Ordering run completed")
}
