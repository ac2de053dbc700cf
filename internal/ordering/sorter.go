package ordering

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/elisa-a-v/courtlistener/internal/domain"
	"github.com/elisa-a-v/courtlistener/internal/logger"
	"github.com/elisa-a-v/courtlistener/internal/repository"
)

// columbiaImportPrefix is the path the Columbia importer recorded in each
// opinion's local_path; it is rewritten to the operator's local copy of the
// archive.
const columbiaImportPrefix = "/home/mlissner/columbia/opinions"

// Sorter assigns ordering keys to the sub-opinions of clusters. The delay
// between clusters keeps downstream index updates from falling behind.
type Sorter struct {
	repo  *repository.OpinionRepository
	delay time.Duration
}

// NewSorter creates a Sorter.
func NewSorter(repo *repository.OpinionRepository, delay time.Duration) *Sorter {
	return &Sorter{repo: repo, delay: delay}
}

// SortHarvard fills ordering keys for clusters imported from Harvard JSON.
// Harvard data is already ordered by appearance in the source file, so the
// keys just follow opinion ID. Combined opinions are skipped. Returns the
// number of clusters updated.
func (s *Sorter) SortHarvard(ctx context.Context, skipUntil int64, limit int) (int, error) {
	clusters, err := s.repo.HarvardClusters(ctx, skipUntil, limit)
	if err != nil {
		return 0, err
	}
	logger.CtxInfo(ctx, "Harvard clusters to process: %d", len(clusters))

	completed := 0
	for _, cluster := range clusters {
		if err := ctx.Err(); err != nil {
			return completed, err
		}
		logger.CtxInfo(ctx, "Processing cluster id: %d", cluster.ID)

		subOpinions := cluster.SubOpinions
		sort.Slice(subOpinions, func(i, j int) bool {
			return subOpinions[i].ID < subOpinions[j].ID
		})

		keys := make(map[int64]int)
		order := 1
		for _, op := range subOpinions {
			if op.Type == domain.OpinionTypeCombined {
				continue
			}
			keys[op.ID] = order
			order++
		}
		if len(keys) == 0 {
			// Flag anything unexpected, like a cluster of only combined
			// opinions.
			logger.CtxInfo(ctx, "No sub-opinions updated for cluster id: %d", cluster.ID)
			continue
		}

		if err := s.repo.SetOrderingKeys(ctx, keys); err != nil {
			return completed, err
		}
		logger.CtxInfo(ctx, "Harvard opinions reordered for cluster id: %d", cluster.ID)
		completed++
		s.wait(ctx)
	}

	logger.CtxInfo(ctx, "Processed Harvard clusters: %d", completed)
	return completed, nil
}

// SortColumbia orders opinions of Columbia-archive clusters by their
// position in the cluster's source XML. xmlDir is the local root of the
// archive. Returns the number of clusters updated.
func (s *Sorter) SortColumbia(ctx context.Context, xmlDir string, skipUntil int64) (int, error) {
	clusterIDs, err := s.repo.ColumbiaClusterIDs(ctx, skipUntil)
	if err != nil {
		return 0, err
	}
	logger.CtxInfo(ctx, "Columbia clusters to process: %d", len(clusterIDs))

	completed := 0
	for _, clusterID := range clusterIDs {
		if err := ctx.Err(); err != nil {
			return completed, err
		}
		logger.CtxInfo(ctx, "Starting opinion cluster: %d", clusterID)

		opinions, err := s.repo.ClusterOpinionsWithPath(ctx, clusterID)
		if err != nil {
			return completed, err
		}
		if len(opinions) < 2 {
			logger.CtxInfo(ctx, "Skipping opinion cluster with fewer than two opinions")
			continue
		}

		ordered, err := s.orderOpinions(ctx, opinions, xmlDir)
		if err != nil {
			return completed, err
		}

		keys := make(map[int64]int, len(ordered))
		for i, op := range ordered {
			keys[op.ID] = i + 1
		}
		if err := s.repo.SetOrderingKeys(ctx, keys); err != nil {
			return completed, err
		}

		completed++
		logger.CtxInfo(ctx, "Opinion cluster saved: %d", clusterID)
		s.wait(ctx)
	}

	logger.CtxInfo(ctx, "Processed Columbia clusters: %d", completed)
	return completed, nil
}

// orderOpinions picks the cheap path when a two-opinion cluster has a lead
// opinion, and falls back to text matching otherwise.
func (s *Sorter) orderOpinions(ctx context.Context, opinions []domain.Opinion, xmlDir string) ([]domain.Opinion, error) {
	if len(opinions) == 2 && hasLead(opinions) && opinions[0].Type != opinions[1].Type {
		logger.CtxInfo(ctx, "Sorting opinions with one lead opinion")
		ordered := append([]domain.Opinion(nil), opinions...)
		// Type codes carry a numeric prefix that puts the lead first.
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].Type < ordered[j].Type
		})
		return ordered, nil
	}

	logger.CtxInfo(ctx, "Sorting order by location")
	return matchText(opinions, xmlDir)
}

func hasLead(opinions []domain.Opinion) bool {
	for _, op := range opinions {
		if op.Type == domain.OpinionTypeLead {
			return true
		}
	}
	return false
}

// matchText orders opinions by locating each one's unique n-gram inside the
// cluster's source XML. Opinions that cannot be located sort last; these
// are usually short dissents.
func matchText(opinions []domain.Opinion, xmlDir string) ([]domain.Opinion, error) {
	path := strings.Replace(opinions[0].LocalPath, columbiaImportPrefix, xmlDir, 1)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source xml %s: %w", path, err)
	}
	reference := CleanText(string(raw))

	type match struct {
		op       domain.Opinion
		position int
	}
	matches := make([]match, 0, len(opinions))
	for _, op := range opinions {
		words := Words(ExtractText(op.HTMLColumbia))
		matches = append(matches, match{
			op:       op,
			position: MatchPosition(reference, words),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].position < matches[j].position
	})

	ordered := make([]domain.Opinion, 0, len(matches))
	for _, m := range matches {
		ordered = append(ordered, m.op)
	}
	return ordered, nil
}

func (s *Sorter) wait(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
}
