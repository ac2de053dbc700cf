package checkpoint

import (
	"context"
	"testing"

	"github.com/elisa-a-v/courtlistener/internal/domain"
)

func TestKey(t *testing.T) {
	testCases := []struct {
		recordType domain.RecordType
		want       string
	}{
		{domain.RecordTypeOpinion, "o_import_status"},
		{domain.RecordTypeRECAPDocument, "rd_import_status"},
		{domain.RecordTypeOralArgument, "oa_import_status"},
	}
	for _, tc := range testCases {
		if got := Key(tc.recordType); got != tc.want {
			t.Errorf("Key(%s) = %q, want %q", tc.recordType, got, tc.want)
		}
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// Absent checkpoint loads as zero value.
	cp, err := store.Load(ctx, domain.RecordTypeOpinion)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cp.IsZero() {
		t.Fatalf("expected zero checkpoint, got %+v", cp)
	}

	saved := &Checkpoint{
		LastPK:               120,
		TotalRecords:         5000,
		RecordsProcessed:     120,
		NextIterationCounter: 1,
	}
	if err := store.Save(ctx, domain.RecordTypeOpinion, saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, domain.RecordTypeOpinion)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *saved {
		t.Errorf("loaded %+v, want %+v", loaded, saved)
	}

	// Mutating the loaded copy must not affect the stored value.
	loaded.LastPK = 999
	again, _ := store.Load(ctx, domain.RecordTypeOpinion)
	if again.LastPK != 120 {
		t.Errorf("store leaked a mutable reference: last_pk = %d", again.LastPK)
	}

	// Record types are isolated.
	other, _ := store.Load(ctx, domain.RecordTypeRECAPDocument)
	if !other.IsZero() {
		t.Errorf("unrelated record type has checkpoint %+v", other)
	}

	if err := store.Delete(ctx, domain.RecordTypeOpinion); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Exists(domain.RecordTypeOpinion) {
		t.Error("checkpoint present after delete")
	}
}

func TestParseField(t *testing.T) {
	fields := map[string]string{
		"last_pk":       "42",
		"total_records": "",
		"bad":           "not-a-number",
	}

	if v, err := parseField(fields, "last_pk"); err != nil || v != 42 {
		t.Errorf("parseField(last_pk) = %d, %v; want 42, nil", v, err)
	}
	if v, err := parseField(fields, "total_records"); err != nil || v != 0 {
		t.Errorf("parseField(empty) = %d, %v; want 0, nil", v, err)
	}
	if v, err := parseField(fields, "missing"); err != nil || v != 0 {
		t.Errorf("parseField(missing) = %d, %v; want 0, nil", v, err)
	}
	if _, err := parseField(fields, "bad"); err == nil {
		t.Error("parseField(bad) succeeded, want error")
	}
}
