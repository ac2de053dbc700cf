package domain

// Jurisdiction classifies a court within the federal/state hierarchy.
type Jurisdiction string

const (
	JurisdictionFederalAppellate Jurisdiction = "F"
	JurisdictionFederalDistrict  Jurisdiction = "FD"
	JurisdictionFederalSpecial   Jurisdiction = "FS"
	JurisdictionStateSupreme     Jurisdiction = "S"
	JurisdictionStateAppellate   Jurisdiction = "SA"
)

// Court represents a court of law. The ID is the court's short code
// (e.g. "dcd" for the District of Columbia district court).
type Court struct {
	ID           string       `gorm:"type:text;primaryKey" json:"id"`
	FullName     string       `gorm:"type:text" json:"full_name"`
	ShortName    string       `gorm:"type:text" json:"short_name"`
	Jurisdiction Jurisdiction `gorm:"type:text;index:idx_courts_jurisdiction" json:"jurisdiction"`
	InUse        bool         `gorm:"default:true" json:"in_use"`
}

// TableName returns the database table name for Court.
func (Court) TableName() string {
	return "search_court"
}
