package domain

import "time"

// DocketAlertType controls whether an alert is actively sending.
type DocketAlertType int

const (
	DocketAlertUnsubscription DocketAlertType = 0
	DocketAlertSubscription   DocketAlertType = 1
)

// DocketAlert subscribes a user to updates on a docket. Both timestamps are
// indexed so the alert sweeper can scan by recency. A DateModified in the
// year 1750 indicates the value is unknown.
type DocketAlert struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	DocketID     int64           `gorm:"not null;uniqueIndex:idx_docketalerts_docket_user" json:"docket_id"`
	Docket       *Docket         `gorm:"foreignKey:DocketID" json:"-"`
	UserID       int64           `gorm:"not null;uniqueIndex:idx_docketalerts_docket_user" json:"user_id"`
	AlertType    DocketAlertType `gorm:"default:1" json:"alert_type"`
	SecretKey    string          `gorm:"type:text" json:"-"`
	DateCreated  time.Time       `gorm:"autoCreateTime;index:idx_docketalerts_date_created" json:"date_created"`
	DateModified time.Time       `gorm:"autoUpdateTime;index:idx_docketalerts_date_modified" json:"date_modified"`
}

// TableName returns the database table name for DocketAlert.
func (DocketAlert) TableName() string {
	return "alerts_docketalert"
}
