package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// CourtRepository handles court, docket, and RECAP document queries for the
// corpus importers.
type CourtRepository struct {
	db *gorm.DB
}

// NewCourtRepository creates a new CourtRepository.
func NewCourtRepository(db *gorm.DB) *CourtRepository {
	return &CourtRepository{db: db}
}

// GetByID retrieves a court by its short code.
func (r *CourtRepository) GetByID(ctx context.Context, id string) (*domain.Court, error) {
	var court domain.Court
	if err := r.db.WithContext(ctx).First(&court, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

// FederalDistrictCourts retrieves federal district courts ordered by ID,
// excluding the given court codes. skipUntil (inclusive) is optional when
// empty.
func (r *CourtRepository) FederalDistrictCourts(ctx context.Context, skipUntil string, exclude []string) ([]domain.Court, error) {
	q := r.db.WithContext(ctx).
		Where("jurisdiction = ?", domain.JurisdictionFederalDistrict).
		Order("id")
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	if skipUntil != "" {
		q = q.Where("id >= ?", skipUntil)
	}

	var courts []domain.Court
	if err := q.Find(&courts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch federal district courts: %w", err)
	}
	return courts, nil
}

// LatestNonRECAPDateFiled returns the most recent date_filed among a
// court's opinion clusters that did not come from RECAP. Nil when the court
// has no such clusters.
func (r *CourtRepository) LatestNonRECAPDateFiled(ctx context.Context, courtID string) (*time.Time, error) {
	clusters := domain.OpinionCluster{}.TableName()
	dockets := domain.Docket{}.TableName()

	var dates []time.Time
	err := r.db.WithContext(ctx).
		Table(clusters).
		Joins(fmt.Sprintf("JOIN %s ON %s.docket_id = %s.id", dockets, clusters, dockets)).
		Where(fmt.Sprintf("%s.court_id = ?", dockets), courtID).
		Where(fmt.Sprintf("%s.source NOT LIKE ?", clusters), "%"+domain.SourceRECAP+"%").
		Where(fmt.Sprintf("%s.date_filed IS NOT NULL", clusters)).
		Order(fmt.Sprintf("%s.date_filed DESC", clusters)).
		Limit(1).
		Pluck(fmt.Sprintf("%s.date_filed", clusters), &dates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest date filed for %s: %w", courtID, err)
	}
	if len(dates) == 0 {
		return nil, nil
	}
	return &dates[0], nil
}

// FreeRECAPDocumentIDs retrieves IDs of available, free-on-PACER RECAP
// documents for a court whose docket entries were filed after the given
// date, in ascending ID order. afterID pages through results.
func (r *CourtRepository) FreeRECAPDocumentIDs(ctx context.Context, courtID string, filedAfter time.Time, afterID int64, limit int) ([]int64, error) {
	docs := domain.RECAPDocument{}.TableName()
	entries := domain.DocketEntry{}.TableName()
	dockets := domain.Docket{}.TableName()

	q := r.db.WithContext(ctx).
		Table(docs).
		Joins(fmt.Sprintf("JOIN %s ON %s.docket_entry_id = %s.id", entries, docs, entries)).
		Joins(fmt.Sprintf("JOIN %s ON %s.docket_id = %s.id", dockets, entries, dockets)).
		Where(fmt.Sprintf("%s.court_id = ?", dockets), courtID).
		Where(fmt.Sprintf("%s.date_filed > ?", entries), filedAfter).
		Where(fmt.Sprintf("%s.is_available = ? AND %s.is_free_on_pacer = ?", docs, docs), true, true).
		Order(fmt.Sprintf("%s.id", docs)).
		Limit(limit)
	if afterID > 0 {
		q = q.Where(fmt.Sprintf("%s.id > ?", docs), afterID)
	}

	var ids []int64
	if err := q.Pluck(fmt.Sprintf("%s.id", docs), &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recap document ids for %s: %w", courtID, err)
	}
	return ids, nil
}

// GetRECAPDocument retrieves one RECAP document with its docket entry and
// docket preloaded.
func (r *CourtRepository) GetRECAPDocument(ctx context.Context, id int64) (*domain.RECAPDocument, error) {
	var doc domain.RECAPDocument
	if err := r.db.WithContext(ctx).
		Preload("DocketEntry").
		Preload("DocketEntry.Docket").
		First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}
