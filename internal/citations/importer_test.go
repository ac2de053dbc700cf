package citations

import (
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	input := "citing,cited\n100,200\n100,300\n4,5\n"
	pairs, err := parseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}

	want := []Pair{{100, 200}, {100, 300}, {4, 5}}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(pairs), len(want))
	}
	for i, p := range pairs {
		if p != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestParseCSVErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "wrong header", input: "from,to\n1,2\n"},
		{name: "non-integer id", input: "citing,cited\nabc,2\n"},
		{name: "wrong column count", input: "citing,cited\n1,2,3\n"},
		{name: "empty file", input: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseCSV(strings.NewReader(tc.input)); err == nil {
				t.Error("expected parse error, got nil")
			}
		})
	}
}
