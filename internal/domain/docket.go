package domain

import "time"

// OCR status values for RECAP documents. OCRStatusComplete marks documents
// whose text came entirely from OCR and is therefore lower quality.
const (
	OCRStatusComplete   = 1
	OCRStatusPartial    = 2
	OCRStatusFailed     = 3
	OCRStatusUnneeded   = 4
	OCRStatusUnanswered = 5
)

// Docket represents one case on a court's docket.
type Docket struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CourtID      string     `gorm:"type:text;not null;index:idx_dockets_court" json:"court_id"`
	Court        *Court     `gorm:"foreignKey:CourtID" json:"-"`
	CaseName     string     `gorm:"type:text" json:"case_name"`
	DocketNumber string     `gorm:"type:text;index:idx_dockets_number" json:"docket_number"`
	DateFiled    *time.Time `json:"date_filed,omitempty"`
	DateCreated  time.Time  `gorm:"autoCreateTime;index:idx_dockets_date_created" json:"date_created"`
	DateModified time.Time  `gorm:"autoUpdateTime;index:idx_dockets_date_modified" json:"date_modified"`
}

// TableName returns the database table name for Docket.
func (Docket) TableName() string {
	return "search_docket"
}

// DocketEntry represents a single entry on a docket.
type DocketEntry struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	DocketID    int64      `gorm:"not null;index:idx_docketentries_docket" json:"docket_id"`
	Docket      *Docket    `gorm:"foreignKey:DocketID" json:"-"`
	EntryNumber *int64     `json:"entry_number,omitempty"`
	DateFiled   *time.Time `gorm:"index:idx_docketentries_date_filed" json:"date_filed,omitempty"`
	Description string     `gorm:"type:text" json:"description"`
}

// TableName returns the database table name for DocketEntry.
func (DocketEntry) TableName() string {
	return "search_docketentry"
}

// RECAPDocument is a document fetched from PACER via the RECAP archive.
type RECAPDocument struct {
	ID             int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	DocketEntryID  int64        `gorm:"not null;index:idx_recapdocs_entry" json:"docket_entry_id"`
	DocketEntry    *DocketEntry `gorm:"foreignKey:DocketEntryID" json:"-"`
	DocumentNumber string       `gorm:"type:text" json:"document_number"`
	IsAvailable    bool         `gorm:"default:false;index:idx_recapdocs_available" json:"is_available"`
	IsFreeOnPacer  bool         `gorm:"default:false" json:"is_free_on_pacer"`
	PageCount      int          `gorm:"default:0" json:"page_count"`
	OCRStatus      int          `gorm:"default:0" json:"ocr_status"`
	FilepathLocal  string       `gorm:"type:text" json:"filepath_local"`
	PlainText      string       `gorm:"type:text" json:"plain_text,omitempty"`
}

// TableName returns the database table name for RECAPDocument.
func (RECAPDocument) TableName() string {
	return "search_recapdocument"
}
