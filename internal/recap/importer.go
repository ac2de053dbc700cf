package recap

import (
	"context"
	"time"

	"github.com/elisa-a-v/courtlistener/internal/domain"
	"github.com/elisa-a-v/courtlistener/internal/logger"
	"github.com/elisa-a-v/courtlistener/internal/repository"
)

// Courts that are never imported: orld is historical, and dcd opinions are
// gathered from the court directly.
var excludedCourts = []string{"orld", "dcd"}

// documentPageSize is how many RECAP document IDs are pulled per query while
// walking one court.
const documentPageSize = 1000

// Options controls one import run.
type Options struct {
	// CourtID restricts the run to one court. Empty imports every federal
	// district court.
	CourtID string

	// SkipUntil restarts a full run at the given court ID (inclusive).
	SkipUntil string

	// TotalCount caps the number of documents ingested; zero means no cap.
	TotalCount int

	// MinInterval spaces out extraction requests.
	MinInterval time.Duration
}

// Importer converts free, available RECAP documents into opinion clusters.
type Importer struct {
	courts    *repository.CourtRepository
	opinions  *repository.OpinionRepository
	extractor *Extractor
}

// NewImporter creates an Importer.
func NewImporter(courts *repository.CourtRepository, opinions *repository.OpinionRepository, extractor *Extractor) *Importer {
	return &Importer{
		courts:    courts,
		opinions:  opinions,
		extractor: extractor,
	}
}

// Run walks the selected courts and ingests documents filed after each
// court's newest non-RECAP opinion cluster. Returns the number of documents
// ingested.
func (im *Importer) Run(ctx context.Context, opts Options) (int, error) {
	courts, err := im.selectCourts(ctx, opts)
	if err != nil {
		return 0, err
	}

	throttle := newThrottle(opts.MinInterval)
	count := 0
	for _, court := range courts {
		cctx := logger.SetCourtID(ctx, court.ID)
		logger.CtxInfo(cctx, "Importing RECAP documents for %s", court.ID)

		latest, err := im.courts.LatestNonRECAPDateFiled(cctx, court.ID)
		if err != nil {
			return count, err
		}
		if latest == nil {
			logger.CtxError(cctx, "Court %s has no opinion clusters for recap import", court.ID)
			continue
		}

		done, err := im.importCourt(cctx, court.ID, *latest, opts, throttle, &count)
		if err != nil {
			return count, err
		}
		if done {
			logger.CtxInfo(cctx, "RECAP import completed for %d documents", opts.TotalCount)
			return count, nil
		}
	}
	return count, nil
}

func (im *Importer) selectCourts(ctx context.Context, opts Options) ([]domain.Court, error) {
	if opts.CourtID != "" {
		court, err := im.courts.GetByID(ctx, opts.CourtID)
		if err != nil {
			return nil, err
		}
		return []domain.Court{*court}, nil
	}
	return im.courts.FederalDistrictCourts(ctx, opts.SkipUntil, excludedCourts)
}

// importCourt pages through a court's eligible documents. The bool result
// is true when the run's total cap has been reached.
func (im *Importer) importCourt(ctx context.Context, courtID string, filedAfter time.Time, opts Options, throttle *throttle, count *int) (bool, error) {
	var afterID int64
	for {
		ids, err := im.courts.FreeRECAPDocumentIDs(ctx, courtID, filedAfter, afterID, documentPageSize)
		if err != nil {
			return false, err
		}
		if len(ids) == 0 {
			return false, nil
		}

		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			logger.CtxInfo(ctx, "%d: Importing rd %d in %s", *count, id, courtID)
			throttle.wait(ctx)

			if err := im.ingestDocument(ctx, id); err != nil {
				return false, err
			}
			*count++
			if opts.TotalCount > 0 && *count >= opts.TotalCount {
				return true, nil
			}
		}
		afterID = ids[len(ids)-1]
	}
}

// ingestDocument extracts a document's text and stores it as a one-opinion
// cluster on the document's docket.
func (im *Importer) ingestDocument(ctx context.Context, id int64) error {
	doc, err := im.courts.GetRECAPDocument(ctx, id)
	if err != nil {
		return err
	}

	text, err := im.extractor.ExtractText(ctx, doc)
	if err != nil {
		return err
	}

	cluster := &domain.OpinionCluster{
		DocketID:  doc.DocketEntry.DocketID,
		Source:    domain.SourceRECAP,
		DateFiled: doc.DocketEntry.DateFiled,
	}
	if doc.DocketEntry.Docket != nil {
		cluster.CaseName = doc.DocketEntry.Docket.CaseName
	}
	op := &domain.Opinion{
		Type:      domain.OpinionTypeCombined,
		PlainText: text,
	}
	return im.opinions.CreateClusterWithOpinion(ctx, cluster, op)
}

// throttle enforces a minimum interval between extraction requests so the
// microservice is not overwhelmed.
type throttle struct {
	interval time.Duration
	next     time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: interval}
}

func (t *throttle) wait(ctx context.Context) {
	if t.interval <= 0 {
		return
	}
	now := time.Now()
	if now.Before(t.next) {
		select {
		case <-time.After(t.next.Sub(now)):
		case <-ctx.Done():
			return
		}
	}
	t.next = time.Now().Add(t.interval)
}
