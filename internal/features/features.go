// Package features implements the per-transcript linguistic measures. Every
// extractor is a pure function of an Input; none of them mutates it.
package features

import (
	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/metric"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/cmsdko/lingua/internal/text"
)

// Input bundles what the extractors read for one transcript.
type Input struct {
	// Text is the transcript after UCSF marker removal. Substring-based
	// measures and the word count read it.
	Text string
	// Clean is text.Clean(Text).
	Clean string
	Res   *lang.Resources
	Doc   *nlp.Doc
}

// NewInput prepares the shared input. res and doc must not be nil.
func NewInput(raw string, res *lang.Resources, doc *nlp.Doc) *Input {
	return &Input{
		Text:  raw,
		Clean: text.Clean(raw),
		Res:   res,
		Doc:   doc,
	}
}

func (in *Input) Language() lang.Language { return in.Res.Language }

// WordCount is the whitespace-split word count of the transcript. It is the
// denominator of every relative frequency.
func (in *Input) WordCount() int {
	return len(text.Words(in.Text))
}

// Count pairs an absolute count with its frequency relative to the word count.
type Count struct {
	Absolute int
	Relative metric.Value
}

func (in *Input) count(n int) Count {
	return Count{Absolute: n, Relative: metric.Frequency(n, in.WordCount())}
}

// tokenTexts returns the surface form of every token.
func tokenTexts(doc *nlp.Doc) []string {
	out := make([]string, len(doc.Tokens))
	for i, t := range doc.Tokens {
		out[i] = t.Text
	}
	return out
}

// Lemmas returns the lemma of every non-stop token, in order.
func Lemmas(doc *nlp.Doc) []string {
	var out []string
	for _, t := range doc.Tokens {
		if !t.IsStop {
			out = append(out, t.Lemma)
		}
	}
	return out
}

func distinct(items []string) int {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it] = struct{}{}
	}
	return len(seen)
}
