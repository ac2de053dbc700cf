package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// CitationRepository handles citation edges between opinions.
type CitationRepository struct {
	db *gorm.DB
}

// NewCitationRepository creates a new CitationRepository.
func NewCitationRepository(db *gorm.DB) *CitationRepository {
	return &CitationRepository{db: db}
}

// GetByPair retrieves the citation edge from citing to cited, if present.
func (r *CitationRepository) GetByPair(ctx context.Context, citingID, citedID int64) (*domain.OpinionsCited, error) {
	var cite domain.OpinionsCited
	err := r.db.WithContext(ctx).
		First(&cite, "citing_opinion_id = ? AND cited_opinion_id = ?", citingID, citedID).Error
	if err != nil {
		return nil, err
	}
	return &cite, nil
}

// Exists reports whether the citation edge is already recorded.
func (r *CitationRepository) Exists(ctx context.Context, citingID, citedID int64) (bool, error) {
	_, err := r.GetByPair(ctx, citingID, citedID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// Create inserts a citation edge.
func (r *CitationRepository) Create(ctx context.Context, cite *domain.OpinionsCited) error {
	return r.db.WithContext(ctx).Create(cite).Error
}

// OpinionExists reports whether both endpoints of a citation exist.
func (r *CitationRepository) OpinionExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Opinion{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
