package search

import "testing"

func TestParseRelated(t *testing.T) {
	testCases := []struct {
		name    string
		query   string
		wantIDs []int64
		wantOK  bool
	}{
		{name: "single id", query: "related:12345", wantIDs: []int64{12345}, wantOK: true},
		{name: "multiple ids", query: "related:1,2,33", wantIDs: []int64{1, 2, 33}, wantOK: true},
		{name: "embedded in query", query: "fraud related:99 damages", wantIDs: []int64{99}, wantOK: true},
		{name: "no prefix", query: "just a query", wantOK: false},
		{name: "prefix glued to word", query: "unrelated:5", wantOK: false},
		{name: "trailing comma", query: "related:5,", wantOK: false},
		{name: "non-numeric", query: "related:abc", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ids, ok := ParseRelated(tc.query)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if len(ids) != len(tc.wantIDs) {
				t.Fatalf("got %d ids, want %d", len(ids), len(tc.wantIDs))
			}
			for i, id := range ids {
				if id != tc.wantIDs[i] {
					t.Errorf("id %d = %d, want %d", i, id, tc.wantIDs[i])
				}
			}
		})
	}
}

func TestHLFieldSetsNonEmpty(t *testing.T) {
	sets := map[string][]string{
		"opinion":              OpinionHLFields,
		"recap":                RECAPHLFields,
		"recap child":          RECAPChildHLFields,
		"oral argument":        OralArgumentHLFields,
		"alerts oral argument": AlertsOralArgumentHLFields,
		"people":               PeopleHLFields,
	}
	for name, fields := range sets {
		if len(fields) == 0 {
			t.Errorf("%s highlight field set is empty", name)
		}
	}
}
