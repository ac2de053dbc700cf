// Package ordering infers the display order of sub-opinions within a
// cluster by locating each opinion's text inside the cluster's source
// document.
package ordering

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	nonAlnumPattern   = regexp.MustCompile(`[^a-zA-Z0-9\s]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	wordPattern       = regexp.MustCompile(`\b\w+\b`)
)

// ExtractText returns the concatenated text content of an HTML or XML
// fragment. Malformed markup is tolerated; the tokenizer recovers the text
// it can.
func ExtractText(src string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(src))
	var sb strings.Builder
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			sb.Write(tokenizer.Text())
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// CleanText strips markup and normalises the result: non-alphanumerics
// become spaces and runs of whitespace collapse to one space.
func CleanText(src string) string {
	text := ExtractText(src)
	text = nonAlnumPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Words splits cleaned text into its word tokens.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// GenerateNGrams divides an opinion's words into n-grams sized by document
// length: single words for very short opinions, bigrams for short ones,
// 5-grams otherwise. Coarser grams on longer documents keep the phrase
// matches unique.
func GenerateNGrams(words []string) [][]string {
	switch n := len(words); {
	case n <= 5:
		grams := make([][]string, 0, n)
		for _, w := range words {
			grams = append(grams, []string{w})
		}
		return grams
	case n < 25:
		grams := make([][]string, 0, n-1)
		for i := 0; i < n-1; i++ {
			grams = append(grams, words[i:i+2])
		}
		return grams
	default:
		grams := make([][]string, 0, n-4)
		for i := 0; i < n-4; i++ {
			grams = append(grams, words[i:i+5])
		}
		return grams
	}
}

// MatchPosition finds where a document's text begins inside the reference
// text: the first n-gram occurring exactly once in the reference wins.
// Documents with no unique n-gram are assigned len(reference), sorting them
// last. Bad or duplicated text therefore degrades to "end of document"
// rather than failing.
func MatchPosition(reference string, words []string) int {
	for _, gram := range GenerateNGrams(words) {
		phrase := strings.Join(gram, " ")
		if strings.Count(reference, phrase) == 1 {
			return strings.Index(reference, phrase)
		}
	}
	return len(reference)
}
