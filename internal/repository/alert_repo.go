package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// AlertRepository handles docket alert subscriptions.
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new AlertRepository.
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Subscribe creates or reactivates an alert for a docket and user.
func (r *AlertRepository) Subscribe(ctx context.Context, alert *domain.DocketAlert) error {
	alert.AlertType = domain.DocketAlertSubscription
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "docket_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"alert_type"}),
	}).Create(alert).Error
}

// Unsubscribe flips an alert to the unsubscription type without deleting it,
// preserving the alert history.
func (r *AlertRepository) Unsubscribe(ctx context.Context, docketID, userID int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.DocketAlert{}).
		Where("docket_id = ? AND user_id = ?", docketID, userID).
		Update("alert_type", domain.DocketAlertUnsubscription)
	if result.Error != nil {
		return fmt.Errorf("failed to unsubscribe alert: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByUser retrieves a user's alerts, most recently modified first.
func (r *AlertRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.DocketAlert, error) {
	var alerts []domain.DocketAlert
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_modified DESC").
		Limit(limit).
		Offset(offset).
		Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}
