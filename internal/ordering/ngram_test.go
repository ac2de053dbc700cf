package ordering

import (
	"strings"
	"testing"
)

func TestGenerateNGrams(t *testing.T) {
	words := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = "w" + strings.Repeat("x", i)
		}
		return out
	}

	testCases := []struct {
		name      string
		wordCount int
		wantGrams int
		wantSize  int
	}{
		{name: "five words yield unigrams", wordCount: 5, wantGrams: 5, wantSize: 1},
		{name: "six words yield bigrams", wordCount: 6, wantGrams: 5, wantSize: 2},
		{name: "twenty-four words yield bigrams", wordCount: 24, wantGrams: 23, wantSize: 2},
		{name: "twenty-five words yield five-grams", wordCount: 25, wantGrams: 21, wantSize: 5},
		{name: "long document", wordCount: 100, wantGrams: 96, wantSize: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			grams := GenerateNGrams(words(tc.wordCount))
			if len(grams) != tc.wantGrams {
				t.Fatalf("got %d grams, want %d", len(grams), tc.wantGrams)
			}
			for i, g := range grams {
				if len(g) != tc.wantSize {
					t.Errorf("gram %d has size %d, want %d", i, len(g), tc.wantSize)
				}
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	src := `<opinion><p>The court, having heard &amp; considered:</p>
	<p>the   motion...</p></opinion>`
	got := CleanText(src)
	want := "The court having heard considered the motion"
	if got != want {
		t.Errorf("CleanText = %q, want %q", got, want)
	}
}

func TestMatchPosition(t *testing.T) {
	reference := "alpha beta gamma delta epsilon zeta eta theta iota kappa"

	t.Run("unique phrase found", func(t *testing.T) {
		pos := MatchPosition(reference, []string{"delta", "epsilon"})
		if want := strings.Index(reference, "delta"); pos != want {
			t.Errorf("position = %d, want %d", pos, want)
		}
	})

	t.Run("unmatched text sorts to the end", func(t *testing.T) {
		pos := MatchPosition(reference, []string{"omega", "psi"})
		if pos != len(reference) {
			t.Errorf("position = %d, want %d", pos, len(reference))
		}
	})

	t.Run("duplicate phrases are skipped", func(t *testing.T) {
		ref := "spam ham spam ham eggs toast"
		// "spam" and "ham" each appear twice; "eggs" is the first unique word.
		pos := MatchPosition(ref, []string{"spam", "ham", "eggs"})
		if want := strings.Index(ref, "eggs"); pos != want {
			t.Errorf("position = %d, want %d", pos, want)
		}
	})
}

func TestMatchPositionOrdering(t *testing.T) {
	reference := "first opinion text body here second opinion dissent follows after"

	early := MatchPosition(reference, []string{"first", "opinion", "text"})
	late := MatchPosition(reference, []string{"dissent", "follows"})
	if early >= late {
		t.Errorf("expected earlier text to match earlier: %d vs %d", early, late)
	}
}
