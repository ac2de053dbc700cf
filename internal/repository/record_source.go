package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// RecordSource exposes an ordered, resumable cursor over record identifiers
// for a record type, plus a one-off total count. Each record type carries
// the row filters that define which records are exportable.
type RecordSource struct {
	db *gorm.DB
}

// NewRecordSource creates a RecordSource bound to db. Pass the replica
// handle to keep heavy scans off the primary.
func NewRecordSource(db *gorm.DB) *RecordSource {
	return &RecordSource{db: db}
}

// filters per record type. Kept as plain SQL fragments so the export scans
// stay index-only instead of hydrating gorm models.
func whereClause(recordType domain.RecordType) (table, filter string, err error) {
	switch recordType {
	case domain.RecordTypeRECAPDocument:
		return domain.RECAPDocument{}.TableName(),
			"is_available = ? AND page_count > 0 AND ocr_status != ?", nil
	case domain.RecordTypeOpinion:
		return domain.Opinion{}.TableName(),
			"extracted_by_ocr != ?", nil
	case domain.RecordTypeOralArgument:
		return domain.Audio{}.TableName(),
			"stt_status = ?", nil
	default:
		return "", "", fmt.Errorf("record type %q is not exportable", recordType)
	}
}

func filterArgs(recordType domain.RecordType) []interface{} {
	switch recordType {
	case domain.RecordTypeRECAPDocument:
		return []interface{}{true, domain.OCRStatusComplete}
	case domain.RecordTypeOpinion:
		return []interface{}{true}
	case domain.RecordTypeOralArgument:
		return []interface{}{1}
	default:
		return nil
	}
}

// Count returns the total number of exportable records for a record type.
func (s *RecordSource) Count(ctx context.Context, recordType domain.RecordType) (int64, error) {
	table, filter, err := whereClause(recordType)
	if err != nil {
		return 0, err
	}

	var count int64
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", table, filter)
	if err := s.db.WithContext(ctx).Raw(query, filterArgs(recordType)...).Scan(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", recordType, err)
	}
	return count, nil
}

// FetchNext returns up to limit identifiers strictly greater than afterPK in
// ascending order. afterPK zero starts from the beginning of the table.
func (s *RecordSource) FetchNext(ctx context.Context, recordType domain.RecordType, afterPK int64, limit int) ([]int64, error) {
	table, filter, err := whereClause(recordType)
	if err != nil {
		return nil, err
	}

	args := filterArgs(recordType)
	query := fmt.Sprintf("SELECT id FROM %s WHERE %s", table, filter)
	if afterPK > 0 {
		query += " AND id > ?"
		args = append(args, afterPK)
	}
	query += " ORDER BY id LIMIT ?"
	args = append(args, limit)

	var ids []int64
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&ids).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch %s ids after pk %d: %w", recordType, afterPK, err)
	}
	return ids, nil
}
