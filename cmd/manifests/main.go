package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/elisa-a-v/courtlistener/internal/checkpoint"
	"github.com/elisa-a-v/courtlistener/internal/config"
	"github.com/elisa-a-v/courtlistener/internal/domain"
	"github.com/elisa-a-v/courtlistener/internal/export"
	"github.com/elisa-a-v/courtlistener/internal/logger"
	"github.com/elisa-a-v/courtlistener/internal/repository"
	"github.com/elisa-a-v/courtlistener/internal/storage"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "courtlistener-manifests",
	})
	logger.SetDefaultLogger(appLogger)

	recordType := flag.String("record-type", "", "Record type to export (rd, o or oa)")
	bucketName := flag.String("bucket-name", "", "Destination bucket for manifest files")
	queryBatchSize := flag.Int("query-batch-size", 0, "IDs fetched per query; one manifest per batch")
	subBatchSize := flag.Int("sub-batch-size", 0, "Records covered by one manifest row")
	useReplica := flag.Bool("use-replica", false, "Read record IDs from the replica database")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	rt, err := domain.ParseRecordType(*recordType)
	if err != nil {
		appLogger.WithError(err).Fatal("Invalid --record-type")
	}
	if *bucketName == "" {
		appLogger.Fatal("--bucket-name is required")
	}
	if *queryBatchSize == 0 {
		*queryBatchSize = cfg.Export.QueryBatchSize
	}
	if *subBatchSize == 0 {
		*subBatchSize = cfg.Export.SubBatchSize
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}
	if *useReplica {
		replica, err := repository.InitReplicaDB(&cfg.Database)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize replica database")
		}
		if replica == nil {
			appLogger.Fatal("--use-replica set but no replica is configured")
		}
		db = replica
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := checkpoint.NewRedisStore(ctx, &cfg.Redis)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer store.Close()

	objectStorage, err := storage.NewS3Storage(&storage.S3Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    *bucketName,
		Region:    cfg.Storage.Region,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}
	if err := objectStorage.EnsureBucket(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
	}

	// Handle graceful shutdown; the current batch finishes and the
	// checkpoint survives for the next invocation.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	appLogger.WithFields(logger.Fields{
		"record_type":      *recordType,
		"bucket":           *bucketName,
		"query_batch_size": *queryBatchSize,
		"sub_batch_size":   *subBatchSize,
		"use_replica":      *useReplica,
	}).Info("Starting manifest export")

	driver := export.NewDriver(
		repository.NewRecordSource(db),
		store,
		objectStorage,
		export.Config{
			QueryBatchSize: *queryBatchSize,
			SubBatchSize:   *subBatchSize,
		},
	)

	if err := driver.Run(ctx, rt); err != nil {
		appLogger.WithError(err).Fatal("Manifest export failed")
	}

	appLogger.Info("Manifest export completed")
}
