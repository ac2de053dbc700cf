// Package citations imports manually curated citation edges from CSV.
package citations

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/elisa-a-v/courtlistener/internal/domain"
	"github.com/elisa-a-v/courtlistener/internal/logger"
	"github.com/elisa-a-v/courtlistener/internal/repository"
)

// Pair is one citation to add, read from the CSV.
type Pair struct {
	Citing int64
	Cited  int64
}

// Stats summarises one import run.
type Stats struct {
	Total    int
	Created  int
	Existing int
	Skipped  int
}

// Importer walks a citation CSV and records the missing edges.
type Importer struct {
	repo  *repository.CitationRepository
	debug bool
}

// NewImporter creates an Importer. With debug set, nothing is written.
func NewImporter(repo *repository.CitationRepository, debug bool) *Importer {
	return &Importer{repo: repo, debug: debug}
}

// LoadCSV parses a citations file with a citing,cited header of integer
// opinion IDs.
func LoadCSV(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open citations csv: %w", err)
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]Pair, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if header[0] != "citing" || header[1] != "cited" {
		return nil, fmt.Errorf("unexpected csv header %v, want [citing cited]", header)
	}

	var pairs []Pair
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		citing, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad citing id on line %d: %w", line, err)
		}
		cited, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad cited id on line %d: %w", line, err)
		}
		pairs = append(pairs, Pair{Citing: citing, Cited: cited})
	}
	return pairs, nil
}

// Run adds each citation that does not already exist. Citations whose
// endpoints are missing are skipped rather than failing the run.
func (i *Importer) Run(ctx context.Context, pairs []Pair) (*Stats, error) {
	stats := &Stats{Total: len(pairs)}

	for _, pair := range pairs {
		logger.CtxInfo(ctx, "Adding citation from %d to %d", pair.Citing, pair.Cited)

		exists, err := i.repo.Exists(ctx, pair.Citing, pair.Cited)
		if err != nil {
			return stats, err
		}
		if exists {
			logger.CtxInfo(ctx, "Citation already exists. Doing nothing.")
			stats.Existing++
			continue
		}

		ok, err := i.endpointsExist(ctx, pair)
		if err != nil {
			return stats, err
		}
		if !ok {
			logger.CtxWarn(ctx, "Unable to create citation %d -> %d: underlying opinion doesn't exist", pair.Citing, pair.Cited)
			stats.Skipped++
			continue
		}

		if i.debug {
			logger.CtxInfo(ctx, "Debug mode, not saving citation %d -> %d", pair.Citing, pair.Cited)
			stats.Created++
			continue
		}

		cite := &domain.OpinionsCited{
			CitingOpinionID: pair.Citing,
			CitedOpinionID:  pair.Cited,
		}
		if err := i.repo.Create(ctx, cite); err != nil {
			return stats, fmt.Errorf("failed to create citation %d -> %d: %w", pair.Citing, pair.Cited, err)
		}
		stats.Created++
	}

	return stats, nil
}

func (i *Importer) endpointsExist(ctx context.Context, pair Pair) (bool, error) {
	for _, id := range []int64{pair.Citing, pair.Cited} {
		ok, err := i.repo.OpinionExists(ctx, id)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
