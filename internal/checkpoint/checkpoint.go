// Package checkpoint persists the progress of resumable batch jobs in an
// external key-value store, one hash-like record per record type.
package checkpoint

import (
	"context"
	"fmt"

	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// Checkpoint is the persisted progress of one export job. LastPK is the
// maximum identifier written to a committed manifest; zero means the job has
// not committed a batch yet. TotalRecords is measured once and only used for
// progress reporting.
type Checkpoint struct {
	LastPK               int64
	TotalRecords         int64
	RecordsProcessed     int64
	NextIterationCounter int64
}

// IsZero reports whether the checkpoint carries no recorded progress.
func (c *Checkpoint) IsZero() bool {
	return c.LastPK == 0 && c.TotalRecords == 0 &&
		c.RecordsProcessed == 0 && c.NextIterationCounter == 0
}

// Store persists job checkpoints. Implementations must return a zero-valued
// (not nil) Checkpoint when no record exists so a fresh job starts from the
// beginning.
type Store interface {
	// Load reads the checkpoint for a record type.
	Load(ctx context.Context, recordType domain.RecordType) (*Checkpoint, error)

	// Save writes the full checkpoint for a record type.
	Save(ctx context.Context, recordType domain.RecordType, cp *Checkpoint) error

	// Delete removes the checkpoint for a record type.
	Delete(ctx context.Context, recordType domain.RecordType) error
}

// Key returns the store key for a record type's import status.
func Key(recordType domain.RecordType) string {
	return fmt.Sprintf("%s_import_status", recordType)
}
