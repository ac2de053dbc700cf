package domain

// OpinionsCited is one directed citation edge between two opinions.
type OpinionsCited struct {
	ID               int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CitingOpinionID  int64    `gorm:"not null;uniqueIndex:idx_citations_pair;index:idx_citations_citing" json:"citing_opinion_id"`
	CitedOpinionID   int64    `gorm:"not null;uniqueIndex:idx_citations_pair" json:"cited_opinion_id"`
	CitingOpinion    *Opinion `gorm:"foreignKey:CitingOpinionID" json:"-"`
	CitedOpinion     *Opinion `gorm:"foreignKey:CitedOpinionID" json:"-"`
	DepthOfDiscussion int     `gorm:"default:1" json:"depth_of_discussion"`
}

// TableName returns the database table name for OpinionsCited.
func (OpinionsCited) TableName() string {
	return "search_opinionscited"
}
