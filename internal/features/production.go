package features

import (
	"strings"

	"github.com/cmsdko/lingua/internal/metric"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// isPunctuation reports whether s is a non-empty run of the ASCII
// punctuation table, such as "." or "?!".
func isPunctuation(s string) bool {
	return s != "" && strings.Trim(s, asciiPunctuation) == ""
}

// LemmaCount counts lemmas that are neither empty nor punctuation.
func LemmaCount(lemmas []string) int {
	n := 0
	for _, l := range lemmas {
		if l != "" && !isPunctuation(l) {
			n++
		}
	}
	return n
}

// Fragments counts non-punctuation tokens that are not words of the
// transcript language.
func Fragments(in *Input) (int, error) {
	n := 0
	for _, t := range in.Doc.Tokens {
		if t.Text == "" || isPunctuation(t.Text) {
			continue
		}
		ok, err := in.Res.InDictionary(t.Text)
		if err != nil {
			return 0, err
		}
		if !ok {
			n++
		}
	}
	return n, nil
}

// FragmentsFromList counts tokens equal to an entry of the language's
// fragment list. Entries listed twice count twice.
func FragmentsFromList(in *Input) metric.Value {
	if in.Res.Fragments == nil {
		return metric.Unsupported()
	}
	freq := make(map[string]int)
	for _, t := range in.Doc.Tokens {
		freq[t.Text]++
	}
	n := 0
	for _, f := range in.Res.Fragments {
		n += freq[f]
	}
	return metric.Int(n)
}

// ContextFragments counts adjacent token pairs listed as interrupted-word
// contexts for the language.
func ContextFragments(in *Input) metric.Value {
	if in.Res.FragmentPairs == nil {
		return metric.Unsupported()
	}
	targets := make(map[[2]string]struct{}, len(in.Res.FragmentPairs))
	for _, p := range in.Res.FragmentPairs {
		targets[p] = struct{}{}
	}
	toks := in.Doc.Tokens
	n := 0
	for i := 0; i+1 < len(toks); i++ {
		if _, ok := targets[[2]string{toks[i].Text, toks[i+1].Text}]; ok {
			n++
		}
	}
	return metric.Int(n)
}
