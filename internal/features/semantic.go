package features

import (
	"strconv"
	"strings"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/metric"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/cmsdko/lingua/internal/vector"
)

// IdeaDensityWindows are the window sizes reported as Densite_idees_<n>.
var IdeaDensityWindows = []int{3, 10, 25, 40}

// ICUResult holds the presence of every Information Content Unit of a task
// dictionary, in dictionary order.
type ICUResult struct {
	Concepts []lang.Concept
	Present  []bool
	// Supported is false when the language has no dictionary for the task.
	Supported bool
}

// ICU marks a concept present when any of its variants is a literal,
// case-sensitive substring of the transcript. A variant inside a longer word
// matches too.
func ICU(in *Input, task string) ICUResult {
	concepts, ok := in.Res.ICU(task)
	if !ok {
		return ICUResult{}
	}
	r := ICUResult{Concepts: concepts, Present: make([]bool, len(concepts)), Supported: true}
	for i, c := range concepts {
		for _, v := range c.Variants {
			if strings.Contains(in.Text, v) {
				r.Present[i] = true
				break
			}
		}
	}
	return r
}

func (r ICUResult) trueCount() int {
	n := 0
	for _, p := range r.Present {
		if p {
			n++
		}
	}
	return n
}

// TrueCount is the number of concepts present.
func (r ICUResult) TrueCount() metric.Value {
	if !r.Supported {
		return metric.Unsupported()
	}
	return metric.Int(r.trueCount())
}

// Efficiency is the number of words per concept present, 0 when no concept is.
func (r ICUResult) Efficiency(words int) metric.Value {
	if !r.Supported {
		return metric.Unsupported()
	}
	n := r.trueCount()
	if n == 0 {
		return metric.Float(0)
	}
	return metric.Float(float64(words) / float64(n))
}

// Fields returns one boolean per concept, keyed by concept name.
func (r ICUResult) Fields() []Field {
	out := make([]Field, len(r.Concepts))
	for i, c := range r.Concepts {
		out[i] = Field{c.Concept, metric.Bool(r.Present[i])}
	}
	return out
}

// IdeaDensity slides windows of each size over the embeddings of content
// tokens (non-stop, non-punctuation) with stride size/2, and averages the
// mean pairwise cosine similarity of every window. Windows without a valid
// pair are ignored. A size with no usable window yields NaN.
func IdeaDensity(doc *nlp.Doc, sizes []int) []Field {
	var embeddings [][]float64
	for _, t := range doc.Tokens {
		if !t.IsStop && !t.IsPunct {
			embeddings = append(embeddings, t.Vector)
		}
	}

	out := make([]Field, 0, len(sizes))
	for _, size := range sizes {
		key := "Densite_idees_" + strconv.Itoa(size)
		stride := size / 2
		if stride < 1 {
			stride = 1
		}
		sum, n := 0.0, 0
		for i := 0; size > 0 && i+size <= len(embeddings); i += stride {
			if mean, ok := vector.MeanPairwise(embeddings[i : i+size]); ok {
				sum += mean
				n++
			}
		}
		if n == 0 {
			out = append(out, Field{key, metric.NaN()})
			continue
		}
		out = append(out, Field{key, metric.Float(sum / float64(n))})
	}
	return out
}
