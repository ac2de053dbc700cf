package checkpoint

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/elisa-a-v/courtlistener/internal/config"
	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// Hash field names inside the per-record-type status key.
const (
	fieldLastPK               = "last_pk"
	fieldTotalRecords         = "total_records"
	fieldRecordsProcessed     = "records_processed"
	fieldNextIterationCounter = "next_iteration_counter"
)

// RedisStore keeps checkpoints in Redis hashes.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore and verifies connectivity.
func NewRedisStore(ctx context.Context, cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Load reads the checkpoint hash for a record type. A missing key yields a
// zero-valued checkpoint.
func (s *RedisStore) Load(ctx context.Context, recordType domain.RecordType) (*Checkpoint, error) {
	fields, err := s.client.HGetAll(ctx, Key(recordType)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint for %s: %w", recordType, err)
	}

	cp := &Checkpoint{}
	if cp.LastPK, err = parseField(fields, fieldLastPK); err != nil {
		return nil, err
	}
	if cp.TotalRecords, err = parseField(fields, fieldTotalRecords); err != nil {
		return nil, err
	}
	if cp.RecordsProcessed, err = parseField(fields, fieldRecordsProcessed); err != nil {
		return nil, err
	}
	if cp.NextIterationCounter, err = parseField(fields, fieldNextIterationCounter); err != nil {
		return nil, err
	}
	return cp, nil
}

// Save writes all checkpoint fields in a single HSET.
func (s *RedisStore) Save(ctx context.Context, recordType domain.RecordType, cp *Checkpoint) error {
	err := s.client.HSet(ctx, Key(recordType),
		fieldLastPK, cp.LastPK,
		fieldTotalRecords, cp.TotalRecords,
		fieldRecordsProcessed, cp.RecordsProcessed,
		fieldNextIterationCounter, cp.NextIterationCounter,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to save checkpoint for %s: %w", recordType, err)
	}
	return nil
}

// Delete removes the whole status key.
func (s *RedisStore) Delete(ctx context.Context, recordType domain.RecordType) error {
	if err := s.client.Del(ctx, Key(recordType)).Err(); err != nil {
		return fmt.Errorf("failed to delete checkpoint for %s: %w", recordType, err)
	}
	return nil
}

func parseField(fields map[string]string, name string) (int64, error) {
	raw, ok := fields[name]
	if !ok || raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt checkpoint field %s=%q: %w", name, raw, err)
	}
	return v, nil
}
