// Package export implements the resumable manifest-export job: it walks a
// record table in primary-key order and writes CSV manifests of ID ranges to
// object storage for downstream batch processing.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// Row is one manifest line, describing the sub-batch of records a single
// downstream worker should process.
type Row struct {
	Bucket   string
	FileName string
}

// ManifestKey returns the object key for one outer batch's manifest.
func ManifestKey(recordType domain.RecordType, counter int64) string {
	return fmt.Sprintf("%s_filelist_%d.csv", recordType, counter)
}

// groupIDs partitions ids into consecutive groups of at most size elements.
// len(ids) == 0 yields no groups; the final group may be short.
func groupIDs(ids []int64, size int) [][]int64 {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	groups := make([][]int64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		groups = append(groups, ids[start:end])
	}
	return groups
}

// BuildRows converts an ordered batch of identifiers into manifest rows. A
// singleton group is named by its only ID; larger groups are named by their
// first and last ID joined with an underscore.
func BuildRows(ids []int64, subBatchSize int, bucket string) []Row {
	groups := groupIDs(ids, subBatchSize)
	rows := make([]Row, 0, len(groups))
	for _, group := range groups {
		name := strconv.FormatInt(group[0], 10)
		if len(group) > 1 {
			name = fmt.Sprintf("%d_%d", group[0], group[len(group)-1])
		}
		rows = append(rows, Row{Bucket: bucket, FileName: name})
	}
	return rows
}

// EncodeCSV serializes manifest rows as UTF-8 CSV with a bucket,file_name
// header.
func EncodeCSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"bucket", "file_name"}); err != nil {
		return nil, fmt.Errorf("failed to write manifest header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Bucket, row.FileName}); err != nil {
			return nil, fmt.Errorf("failed to write manifest row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush manifest: %w", err)
	}
	return buf.Bytes(), nil
}
