package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/elisa-a-v/courtlistener/internal/checkpoint"
	"github.com/elisa-a-v/courtlistener/internal/domain"
	"github.com/elisa-a-v/courtlistener/internal/logger"
	"github.com/elisa-a-v/courtlistener/internal/storage"
)

// RecordFetcher is the paginated-query surface the driver needs from the
// database.
type RecordFetcher interface {
	// Count returns the total number of exportable records for a record type.
	Count(ctx context.Context, recordType domain.RecordType) (int64, error)

	// FetchNext returns up to limit IDs strictly greater than afterPK,
	// ascending. An empty result means the scan is complete.
	FetchNext(ctx context.Context, recordType domain.RecordType, afterPK int64, limit int) ([]int64, error)
}

// Config sizes the export loop.
type Config struct {
	// QueryBatchSize is the number of IDs retrieved per query; one manifest
	// is written per query batch.
	QueryBatchSize int

	// SubBatchSize is the number of records covered by one manifest row.
	SubBatchSize int
}

// Driver orchestrates a checkpointed scan of one record type. Progress is
// committed to the checkpoint store after each uploaded manifest, so a
// failed run resumes from the last committed batch when re-invoked. The
// manifest upload and checkpoint write are not transactional with each
// other: a crash between them re-uploads the same manifest on resume.
//
// Two concurrent runs for the same record type race on the checkpoint; no
// locking is provided.
type Driver struct {
	source  RecordFetcher
	store   checkpoint.Store
	storage storage.ObjectStorage
	cfg     Config
}

// NewDriver creates an export driver. Manifests are uploaded to the bucket
// the storage client is bound to.
func NewDriver(source RecordFetcher, store checkpoint.Store, objectStorage storage.ObjectStorage, cfg Config) *Driver {
	if cfg.QueryBatchSize <= 0 {
		cfg.QueryBatchSize = 1_000_000
	}
	if cfg.SubBatchSize <= 0 {
		cfg.SubBatchSize = 100
	}
	return &Driver{
		source:  source,
		store:   store,
		storage: objectStorage,
		cfg:     cfg,
	}
}

// Run exports every record of recordType not yet covered by a committed
// manifest, then deletes the checkpoint. Errors abort the run with the
// checkpoint left at its last committed state.
func (d *Driver) Run(ctx context.Context, recordType domain.RecordType) error {
	ctx = logger.SetRecordType(ctx, string(recordType))

	cp, err := d.store.Load(ctx, recordType)
	if err != nil {
		return err
	}
	if cp.LastPK > 0 {
		logger.CtxInfo(ctx, "Found a PK in the checkpoint, resuming export from record %d", cp.LastPK)
	}

	// The total is only for progress reporting; measure it once and keep it
	// for later resumptions.
	if cp.TotalRecords == 0 {
		total, err := d.source.Count(ctx, recordType)
		if err != nil {
			return err
		}
		cp.TotalRecords = total
		if err := d.store.Save(ctx, recordType, cp); err != nil {
			return err
		}
	}

	bucket := d.storage.Bucket()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ids, err := d.source.FetchNext(ctx, recordType, cp.LastPK, d.cfg.QueryBatchSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			logger.CtxInfo(ctx, "Finished all the records")
			break
		}

		rows := BuildRows(ids, d.cfg.SubBatchSize, bucket)
		body, err := EncodeCSV(rows)
		if err != nil {
			return err
		}

		key := ManifestKey(recordType, cp.NextIterationCounter)
		if err := d.storage.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), "text/csv"); err != nil {
			return fmt.Errorf("failed to upload manifest %s: %w", key, err)
		}

		cp.NextIterationCounter++
		cp.LastPK = ids[len(ids)-1]
		cp.RecordsProcessed += int64(len(ids))
		if err := d.store.Save(ctx, recordType, cp); err != nil {
			return err
		}

		pct := 0.0
		if cp.TotalRecords > 0 {
			pct = float64(cp.RecordsProcessed) / float64(cp.TotalRecords) * 100
		}
		logger.CtxInfo(ctx, "Retrieved %d/%d (%.0f%%), last PK processed: %d",
			cp.RecordsProcessed, cp.TotalRecords, pct, cp.LastPK)
	}

	// A full scan completed; the next invocation starts from scratch.
	return d.store.Delete(ctx, recordType)
}
