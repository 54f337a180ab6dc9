package features

import (
	"strings"
	"unicode"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/text"
)

// SilentPauses counts occurrences of the language's silent-pause marker.
func SilentPauses(in *Input) int {
	return text.CountAll(in.Text, []string{in.Res.SilentMarker})
}

// FilledPauses counts whitespace words that are filled pauses of the
// language. Matching is on whole words, case-sensitive.
func FilledPauses(in *Input) int {
	n := 0
	for _, w := range pauseWords(in.Text) {
		if _, ok := in.Res.FilledPauses[w]; ok {
			n++
		}
	}
	return n
}

// UCSFPauses counts filled and silent pauses under UCSF transcription
// conventions, independently of the transcript language.
func UCSFPauses(in *Input) (filled, silent int) {
	for _, w := range pauseWords(in.Text) {
		if lang.UCSFFilledPause(w) {
			filled++
		}
	}
	return filled, text.CountAll(in.Text, lang.UCSFSilentMarkers())
}

// Repetitions returns the number of distinct lemmas and the number of
// repeated lemma occurrences.
func Repetitions(lemmas []string) (distinctLemmas, repeated int) {
	d := distinct(lemmas)
	return d, len(lemmas) - d
}

func pauseWords(s string) []string {
	words := text.Words(s)
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimFunc(w, unicode.IsPunct)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
