package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// OpinionRepository handles opinion and opinion-cluster data operations.
type OpinionRepository struct {
	db *gorm.DB
}

// NewOpinionRepository creates a new OpinionRepository.
func NewOpinionRepository(db *gorm.DB) *OpinionRepository {
	return &OpinionRepository{db: db}
}

// GetCluster retrieves a cluster with its sub-opinions.
func (r *OpinionRepository) GetCluster(ctx context.Context, id int64) (*domain.OpinionCluster, error) {
	var cluster domain.OpinionCluster
	if err := r.db.WithContext(ctx).
		Preload("SubOpinions").
		First(&cluster, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cluster, nil
}

// GetOpinion retrieves a single opinion by ID.
func (r *OpinionRepository) GetOpinion(ctx context.Context, id int64) (*domain.Opinion, error) {
	var op domain.Opinion
	if err := r.db.WithContext(ctx).First(&op, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

// SearchClusters retrieves clusters whose case name matches the query, most
// recently filed first.
func (r *OpinionRepository) SearchClusters(ctx context.Context, query string, limit, offset int) ([]domain.OpinionCluster, error) {
	var clusters []domain.OpinionCluster
	q := r.db.WithContext(ctx).Model(&domain.OpinionCluster{})
	if query != "" {
		q = q.Where("case_name LIKE ?", "%"+query+"%")
	}
	if err := q.
		Order("date_filed DESC").
		Limit(limit).
		Offset(offset).
		Find(&clusters).Error; err != nil {
		return nil, fmt.Errorf("failed to search clusters: %w", err)
	}
	return clusters, nil
}

// GetClustersByIDs retrieves clusters for a list of IDs, preserving no
// particular order.
func (r *OpinionRepository) GetClustersByIDs(ctx context.Context, ids []int64) ([]domain.OpinionCluster, error) {
	if len(ids) == 0 {
		return []domain.OpinionCluster{}, nil
	}
	var clusters []domain.OpinionCluster
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&clusters).Error; err != nil {
		return nil, fmt.Errorf("failed to get clusters by IDs: %w", err)
	}
	return clusters, nil
}

// HarvardClusters retrieves clusters imported from Harvard JSON that have
// more than one sub-opinion and were never merged with the Columbia archive,
// ordered by ID. skipUntil (inclusive) and limit are optional when zero.
func (r *OpinionRepository) HarvardClusters(ctx context.Context, skipUntil int64, limit int) ([]domain.OpinionCluster, error) {
	opinions := domain.Opinion{}.TableName()
	clusters := domain.OpinionCluster{}.TableName()

	q := r.db.WithContext(ctx).
		Preload("SubOpinions").
		Where("filepath_json_harvard != ''").
		Where("source NOT LIKE ?", "%"+domain.SourceColumbiaArchive+"%").
		Where(fmt.Sprintf(
			"(SELECT count(*) FROM %s WHERE %s.cluster_id = %s.id) > 1",
			opinions, opinions, clusters,
		)).
		Order("id")
	if skipUntil > 0 {
		q = q.Where("id >= ?", skipUntil)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var result []domain.OpinionCluster
	if err := q.Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch harvard clusters: %w", err)
	}
	return result, nil
}

// ColumbiaClusterIDs retrieves the IDs of clusters sourced from the Columbia
// archive, ordered ascending, strictly after skipUntil when non-zero.
func (r *OpinionRepository) ColumbiaClusterIDs(ctx context.Context, skipUntil int64) ([]int64, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.OpinionCluster{}).
		Where("source LIKE ?", "%"+domain.SourceColumbiaArchive+"%").
		Order("id")
	if skipUntil > 0 {
		q = q.Where("id > ?", skipUntil)
	}

	var ids []int64
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch columbia cluster ids: %w", err)
	}
	return ids, nil
}

// ClusterOpinionsWithPath retrieves a cluster's opinions that carry a local
// source file path, ordered by ID.
func (r *OpinionRepository) ClusterOpinionsWithPath(ctx context.Context, clusterID int64) ([]domain.Opinion, error) {
	var ops []domain.Opinion
	if err := r.db.WithContext(ctx).
		Where("cluster_id = ? AND local_path != ''", clusterID).
		Order("id").
		Find(&ops).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch opinions for cluster %d: %w", clusterID, err)
	}
	return ops, nil
}

// SetOrderingKeys assigns ordering keys to opinions inside one transaction.
// keys maps opinion ID to its 1-based position.
func (r *OpinionRepository) SetOrderingKeys(ctx context.Context, keys map[int64]int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, key := range keys {
			if err := tx.Model(&domain.Opinion{}).
				Where("id = ?", id).
				Update("ordering_key", key).Error; err != nil {
				return fmt.Errorf("failed to set ordering key for opinion %d: %w", id, err)
			}
		}
		return nil
	})
}

// CreateClusterWithOpinion inserts a cluster and its single opinion
// atomically. Used by the RECAP importer.
func (r *OpinionRepository) CreateClusterWithOpinion(ctx context.Context, cluster *domain.OpinionCluster, op *domain.Opinion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cluster).Error; err != nil {
			return fmt.Errorf("failed to create opinion cluster: %w", err)
		}
		op.ClusterID = cluster.ID
		if err := tx.Create(op).Error; err != nil {
			return fmt.Errorf("failed to create opinion: %w", err)
		}
		return nil
	})
}
