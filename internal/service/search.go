package service

import (
	"context"
	"time"

	"github.com/elisa-a-v/courtlistener/internal/domain"
	"github.com/elisa-a-v/courtlistener/internal/logger"
	"github.com/elisa-a-v/courtlistener/internal/repository"
	"github.com/elisa-a-v/courtlistener/internal/search"
)

// SearchService answers opinion search requests from the API.
type SearchService struct {
	opinions *repository.OpinionRepository
}

// NewSearchService creates a SearchService.
func NewSearchService(opinions *repository.OpinionRepository) *SearchService {
	return &SearchService{opinions: opinions}
}

// SearchRequest is a search query with pagination.
type SearchRequest struct {
	Query  string `json:"q" form:"q"`
	Limit  int    `json:"limit" form:"limit"`
	Offset int    `json:"offset" form:"offset"`
}

// SearchResult is the API shape of one matching cluster.
type SearchResult struct {
	ClusterID int64      `json:"cluster_id"`
	CaseName  string     `json:"case_name"`
	DateFiled *time.Time `json:"date_filed,omitempty"`
	Source    string     `json:"source"`
}

// SearchResponse carries results plus the highlight fields the frontend
// should mark up.
type SearchResponse struct {
	Results         []SearchResult `json:"results"`
	HighlightFields []string       `json:"highlight_fields"`
	HighlightTag    string         `json:"highlight_tag"`
}

// Search returns clusters matching the query. A related:<id,...> query is
// answered by cluster lookup instead of name matching.
func (s *SearchService) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var (
		clusters []domain.OpinionCluster
		err      error
	)
	if ids, ok := search.ParseRelated(req.Query); ok {
		logger.CtxDebug(ctx, "Answering related-items query for %d ids", len(ids))
		clusters, err = s.opinions.GetClustersByIDs(ctx, ids)
	} else {
		clusters, err = s.opinions.SearchClusters(ctx, req.Query, limit, req.Offset)
	}
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(clusters))
	for _, c := range clusters {
		results = append(results, SearchResult{
			ClusterID: c.ID,
			CaseName:  c.CaseName,
			DateFiled: c.DateFiled,
			Source:    c.Source,
		})
	}
	return &SearchResponse{
		Results:         results,
		HighlightFields: search.OpinionHLFields,
		HighlightTag:    search.SearchHLTag,
	}, nil
}

// GetCluster returns one cluster with its sub-opinions.
func (s *SearchService) GetCluster(ctx context.Context, id int64) (*domain.OpinionCluster, error) {
	return s.opinions.GetCluster(ctx, id)
}
