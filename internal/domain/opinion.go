package domain

import "time"

// Source codes for opinion clusters. A cluster merged from several sources
// carries the concatenation of their codes, so membership checks use
// strings.Contains on the Source column.
const (
	SourceCourtWebsite    = "C"
	SourceRECAP           = "G"
	SourceHarvardCaselaw  = "U"
	SourceColumbiaArchive = "Z"
)

// Opinion type codes. The numeric prefix keeps them sortable with the lead
// opinion first.
const (
	OpinionTypeCombined    = "010combined"
	OpinionTypeUnanimous   = "015unamimous"
	OpinionTypeLead        = "020lead"
	OpinionTypePlurality   = "025plurality"
	OpinionTypeConcurrence = "030concurrence"
	OpinionTypeDissent     = "040dissent"
)

// OpinionCluster groups the sub-opinions issued for a single decision.
type OpinionCluster struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	DocketID            int64      `gorm:"not null;index:idx_clusters_docket" json:"docket_id"`
	Docket              *Docket    `gorm:"foreignKey:DocketID" json:"-"`
	CaseName            string     `gorm:"type:text" json:"case_name"`
	DateFiled           *time.Time `gorm:"index:idx_clusters_date_filed" json:"date_filed,omitempty"`
	Source              string     `gorm:"type:text" json:"source"`
	FilepathJSONHarvard string     `gorm:"type:text" json:"filepath_json_harvard"`
	SubOpinions         []Opinion  `gorm:"foreignKey:ClusterID" json:"sub_opinions,omitempty"`
	DateCreated         time.Time  `gorm:"autoCreateTime" json:"date_created"`
	DateModified        time.Time  `gorm:"autoUpdateTime" json:"date_modified"`
}

// TableName returns the database table name for OpinionCluster.
func (OpinionCluster) TableName() string {
	return "search_opinioncluster"
}

// Opinion is a single written opinion within a cluster.
type Opinion struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ClusterID      int64           `gorm:"not null;index:idx_opinions_cluster" json:"cluster_id"`
	Cluster        *OpinionCluster `gorm:"foreignKey:ClusterID" json:"-"`
	Type           string          `gorm:"type:text" json:"type"`
	Author         string          `gorm:"type:text" json:"author,omitempty"`
	PlainText      string          `gorm:"type:text" json:"plain_text,omitempty"`
	HTMLColumbia   string          `gorm:"type:text" json:"html_columbia,omitempty"`
	LocalPath      string          `gorm:"type:text" json:"local_path,omitempty"`
	ExtractedByOCR bool            `gorm:"default:false" json:"extracted_by_ocr"`
	OrderingKey    *int            `json:"ordering_key,omitempty"`
	DateCreated    time.Time       `gorm:"autoCreateTime" json:"date_created"`
	DateModified   time.Time       `gorm:"autoUpdateTime" json:"date_modified"`
}

// TableName returns the database table name for Opinion.
func (Opinion) TableName() string {
	return "search_opinion"
}

// Audio is an oral-argument recording attached to a docket. STTStatus 1
// marks recordings with a completed speech-to-text transcript.
type Audio struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	DocketID  int64   `gorm:"not null;index:idx_audio_docket" json:"docket_id"`
	Docket    *Docket `gorm:"foreignKey:DocketID" json:"-"`
	CaseName  string  `gorm:"type:text" json:"case_name"`
	Duration  int     `gorm:"default:0" json:"duration"`
	STTStatus int     `gorm:"default:0;index:idx_audio_stt_status" json:"stt_status"`
}

// TableName returns the database table name for Audio.
func (Audio) TableName() string {
	return "audio_audio"
}
