package text

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var tokenizeCleanRegex = regexp.MustCompile(`[^\p{L}\p{N}\s’'-]`)

// Cleaning stages, applied in this order by Clean.
var (
	bracketRegex     = regexp.MustCompile(`\[.*?\]`)
	punctuationRegex = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_’ .?]`)
	strayDotRegex    = regexp.MustCompile(`\s\.`)
	extraSpaceRegex  = regexp.MustCompile(`\s\s+`)
)

// Normalize puts a transcript into Unicode NFC form so that composed and
// decomposed accents ("é" vs "é") compare equal downstream.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// Clean removes bracketed annotations, strips punctuation other than
// apostrophes (’), periods and question marks, drops periods that follow
// whitespace and collapses runs of whitespace.
//
// Clean is idempotent: Clean(Clean(s)) == Clean(s). Stray-dot removal runs to
// a fixpoint because deleting " ." from " .." exposes a new " .".
func Clean(raw string) string {
	s := Normalize(raw)
	s = bracketRegex.ReplaceAllString(s, "")
	s = punctuationRegex.ReplaceAllString(s, "")
	for strayDotRegex.MatchString(s) {
		s = strayDotRegex.ReplaceAllString(s, "")
	}
	return extraSpaceRegex.ReplaceAllString(s, " ")
}

// Tokenize lowercases text and keeps letters, digits, apostrophes and
// hyphens.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	cleaned := tokenizeCleanRegex.ReplaceAllString(lower, "")
	return strings.Fields(cleaned)
}

// Words splits on whitespace without any other processing. This is the word
// count used as the denominator of every relative frequency.
func Words(s string) []string {
	return strings.Fields(s)
}

// IsAlpha reports whether s is non-empty and made only of letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether s is non-empty and made only of punctuation or symbols.
func IsPunct(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// CountAll sums the non-overlapping occurrences of every needle in s.
func CountAll(s string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if needle == "" {
			continue
		}
		n += strings.Count(s, needle)
	}
	return n
}
