package export

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/elisa-a-v/courtlistener/internal/checkpoint"
	"github.com/elisa-a-v/courtlistener/internal/domain"
)

// fakeSource serves a fixed ascending ID space.
type fakeSource struct {
	ids     []int64
	fetches [][]int64 // records every page served, for re-emission checks
}

func (f *fakeSource) Count(_ context.Context, _ domain.RecordType) (int64, error) {
	return int64(len(f.ids)), nil
}

func (f *fakeSource) FetchNext(_ context.Context, _ domain.RecordType, afterPK int64, limit int) ([]int64, error) {
	var page []int64
	for _, id := range f.ids {
		if id > afterPK {
			page = append(page, id)
			if len(page) == limit {
				break
			}
		}
	}
	f.fetches = append(f.fetches, page)
	return page, nil
}

// fakeStorage records uploads in memory. failAfter > 0 fails the n-th upload.
type fakeStorage struct {
	bucket    string
	objects   map[string]string
	uploads   int
	failAfter int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{bucket: "test-bucket", objects: make(map[string]string)}
}

func (f *fakeStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	f.uploads++
	if f.failAfter > 0 && f.uploads >= f.failAfter {
		return errors.New("simulated upload failure")
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = string(body)
	return nil
}

func (f *fakeStorage) Download(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) Bucket() string { return f.bucket }

func idRange(from, to int64) []int64 {
	ids := make([]int64, 0, to-from+1)
	for id := from; id <= to; id++ {
		ids = append(ids, id)
	}
	return ids
}

func TestDriverFullRun(t *testing.T) {
	source := &fakeSource{ids: idRange(1, 25)}
	store := checkpoint.NewMemoryStore()
	stg := newFakeStorage()

	driver := NewDriver(source, store, stg, Config{QueryBatchSize: 10, SubBatchSize: 4})
	if err := driver.Run(context.Background(), domain.RecordTypeOpinion); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 25 records in pages of 10 -> 3 manifests
	wantKeys := []string{"o_filelist_0.csv", "o_filelist_1.csv", "o_filelist_2.csv"}
	for _, key := range wantKeys {
		if _, ok := stg.objects[key]; !ok {
			t.Errorf("manifest %s was not uploaded", key)
		}
	}
	if len(stg.objects) != len(wantKeys) {
		t.Errorf("got %d manifests, want %d", len(stg.objects), len(wantKeys))
	}

	// ceil(10/4) = 3 rows per full page
	if got := stg.objects["o_filelist_0.csv"]; !strings.Contains(got, "test-bucket,1_4") ||
		!strings.Contains(got, "test-bucket,5_8") ||
		!strings.Contains(got, "test-bucket,9_10") {
		t.Errorf("unexpected first manifest contents:\n%s", got)
	}
	// final short page of 5 -> 4_4 + singleton
	if got := stg.objects["o_filelist_2.csv"]; !strings.Contains(got, "test-bucket,21_24") ||
		!strings.Contains(got, "test-bucket,25") {
		t.Errorf("unexpected last manifest contents:\n%s", got)
	}

	// Checkpoint removed after a completed scan.
	if store.Exists(domain.RecordTypeOpinion) {
		t.Error("checkpoint still present after successful run")
	}
}

func TestDriverResumesAfterCrash(t *testing.T) {
	ctx := context.Background()
	store := checkpoint.NewMemoryStore()

	// First run dies on the second upload.
	source := &fakeSource{ids: idRange(1, 30)}
	stg := newFakeStorage()
	stg.failAfter = 2
	driver := NewDriver(source, store, stg, Config{QueryBatchSize: 10, SubBatchSize: 10})
	if err := driver.Run(ctx, domain.RecordTypeRECAPDocument); err == nil {
		t.Fatal("expected first run to fail")
	}

	cp, err := store.Load(ctx, domain.RecordTypeRECAPDocument)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cp.LastPK != 10 {
		t.Fatalf("checkpoint last_pk = %d after crash, want 10", cp.LastPK)
	}
	if store.Exists(domain.RecordTypeRECAPDocument) == false {
		t.Fatal("checkpoint missing after failed run")
	}

	// Second run picks up strictly after the committed PK.
	source2 := &fakeSource{ids: idRange(1, 30)}
	stg2 := newFakeStorage()
	driver2 := NewDriver(source2, store, stg2, Config{QueryBatchSize: 10, SubBatchSize: 10})
	if err := driver2.Run(ctx, domain.RecordTypeRECAPDocument); err != nil {
		t.Fatalf("resumed run failed: %v", err)
	}

	for _, page := range source2.fetches {
		for _, id := range page {
			if id <= 10 {
				t.Fatalf("resumed run re-emitted committed identifier %d", id)
			}
		}
	}

	// Counter continues from the committed value: first run committed file 0,
	// so the resumed run writes files 1 and 2.
	if _, ok := stg2.objects["rd_filelist_1.csv"]; !ok {
		t.Error("resumed run did not continue the iteration counter at 1")
	}
	if _, ok := stg2.objects["rd_filelist_0.csv"]; ok {
		t.Error("resumed run rewrote the already committed manifest")
	}
	if store.Exists(domain.RecordTypeRECAPDocument) {
		t.Error("checkpoint still present after resumed run completed")
	}
}

func TestDriverNoMatchingRecords(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{}
	store := checkpoint.NewMemoryStore()
	stg := newFakeStorage()

	driver := NewDriver(source, store, stg, Config{QueryBatchSize: 10, SubBatchSize: 5})
	if err := driver.Run(ctx, domain.RecordTypeOralArgument); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stg.uploads != 0 {
		t.Errorf("driver uploaded %d manifests for an empty table", stg.uploads)
	}
	if store.Exists(domain.RecordTypeOralArgument) {
		t.Error("checkpoint not deleted for empty table")
	}
}

func TestDriverKeepsCheckpointUntilZeroRowPage(t *testing.T) {
	ctx := context.Background()
	store := checkpoint.NewMemoryStore()

	// Fail on the last upload: every page so far has had rows, so the
	// checkpoint must survive.
	source := &fakeSource{ids: idRange(1, 20)}
	stg := newFakeStorage()
	stg.failAfter = 2
	driver := NewDriver(source, store, stg, Config{QueryBatchSize: 10, SubBatchSize: 10})
	if err := driver.Run(ctx, domain.RecordTypeOpinion); err == nil {
		t.Fatal("expected run to fail")
	}
	if !store.Exists(domain.RecordTypeOpinion) {
		t.Error("checkpoint deleted even though the scan never observed a zero-row page")
	}
}

func TestDriverProgressAccumulates(t *testing.T) {
	ctx := context.Background()
	store := checkpoint.NewMemoryStore()
	source := &fakeSource{ids: idRange(1, 12)}
	stg := newFakeStorage()
	stg.failAfter = 3 // let two batches commit, then die

	driver := NewDriver(source, store, stg, Config{QueryBatchSize: 5, SubBatchSize: 5})
	if err := driver.Run(ctx, domain.RecordTypeOpinion); err == nil {
		t.Fatal("expected run to fail")
	}

	cp, err := store.Load(ctx, domain.RecordTypeOpinion)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cp.RecordsProcessed != 10 {
		t.Errorf("records_processed = %d, want 10", cp.RecordsProcessed)
	}
	if cp.NextIterationCounter != 2 {
		t.Errorf("next_iteration_counter = %d, want 2", cp.NextIterationCounter)
	}
	if cp.TotalRecords != 12 {
		t.Errorf("total_records = %d, want 12", cp.TotalRecords)
	}
}
