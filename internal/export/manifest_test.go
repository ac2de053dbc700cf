package export

import (
	"strings"
	"testing"

	"github.com/elisa-a-v/courtlistener/internal/domain"
)

func TestGroupIDs(t *testing.T) {
	testCases := []struct {
		name       string
		count      int
		size       int
		wantGroups int
		wantLast   int
	}{
		{name: "exact multiple", count: 10, size: 5, wantGroups: 2, wantLast: 5},
		{name: "remainder", count: 11, size: 5, wantGroups: 3, wantLast: 1},
		{name: "single group", count: 3, size: 100, wantGroups: 1, wantLast: 3},
		{name: "size one", count: 4, size: 1, wantGroups: 4, wantLast: 1},
		{name: "empty", count: 0, size: 5, wantGroups: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ids := make([]int64, tc.count)
			for i := range ids {
				ids[i] = int64(i + 1)
			}

			groups := groupIDs(ids, tc.size)
			if len(groups) != tc.wantGroups {
				t.Fatalf("got %d groups, want %d", len(groups), tc.wantGroups)
			}
			if tc.wantGroups == 0 {
				return
			}
			for i, g := range groups[:len(groups)-1] {
				if len(g) != tc.size {
					t.Errorf("group %d has %d elements, want %d", i, len(g), tc.size)
				}
			}
			if last := groups[len(groups)-1]; len(last) != tc.wantLast {
				t.Errorf("last group has %d elements, want %d", len(last), tc.wantLast)
			}

			// Every ID appears exactly once, in order.
			var flat []int64
			for _, g := range groups {
				flat = append(flat, g...)
			}
			for i, id := range flat {
				if id != ids[i] {
					t.Fatalf("flattened groups diverge at index %d: got %d, want %d", i, id, ids[i])
				}
			}
		})
	}
}

func TestBuildRowsNaming(t *testing.T) {
	testCases := []struct {
		name      string
		ids       []int64
		size      int
		wantNames []string
	}{
		{
			name:      "singleton group",
			ids:       []int64{42},
			size:      5,
			wantNames: []string{"42"},
		},
		{
			name:      "full range group",
			ids:       []int64{42, 43, 44, 45, 46},
			size:      5,
			wantNames: []string{"42_46"},
		},
		{
			name:      "mixed groups",
			ids:       []int64{1, 2, 3, 4, 5, 6},
			size:      5,
			wantNames: []string{"1_5", "6"},
		},
		{
			name:      "sparse identifiers",
			ids:       []int64{10, 99, 4000},
			size:      2,
			wantNames: []string{"10_99", "4000"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows := BuildRows(tc.ids, tc.size, "test-bucket")
			if len(rows) != len(tc.wantNames) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tc.wantNames))
			}
			for i, row := range rows {
				if row.FileName != tc.wantNames[i] {
					t.Errorf("row %d file_name = %q, want %q", i, row.FileName, tc.wantNames[i])
				}
				if row.Bucket != "test-bucket" {
					t.Errorf("row %d bucket = %q, want test-bucket", i, row.Bucket)
				}
			}
		})
	}
}

func TestEncodeCSV(t *testing.T) {
	rows := BuildRows([]int64{1, 2, 3}, 2, "com-courtlistener-storage")
	body, err := EncodeCSV(rows)
	if err != nil {
		t.Fatalf("EncodeCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	want := []string{
		"bucket,file_name",
		"com-courtlistener-storage,1_2",
		"com-courtlistener-storage,3",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i, line := range lines {
		if line != want[i] {
			t.Errorf("line %d = %q, want %q", i, line, want[i])
		}
	}
}

func TestManifestKey(t *testing.T) {
	got := ManifestKey(domain.RecordTypeOpinion, 7)
	if got != "o_filelist_7.csv" {
		t.Errorf("ManifestKey = %q, want o_filelist_7.csv", got)
	}
}
