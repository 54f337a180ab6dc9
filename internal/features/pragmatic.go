package features

import (
	"strings"

	"github.com/cmsdko/lingua/internal/metric"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/cmsdko/lingua/internal/text"
	"github.com/cmsdko/lingua/internal/tfidf"
	"github.com/cmsdko/lingua/internal/vector"
)

// LocalCoherence is the mean cosine similarity between consecutive sentence
// vectors, 0 with fewer than two sentences. When a sentence has no vector,
// sentences are compared by their TF-IDF weighted lemmas instead.
func LocalCoherence(doc *nlp.Doc) float64 {
	if len(doc.Sentences) < 2 {
		return 0
	}
	vectors := make([][]float64, len(doc.Sentences))
	for i, s := range doc.Sentences {
		if vectors[i] = doc.SpanVector(s); vectors[i] == nil {
			return lexicalCoherence(doc)
		}
	}
	total := 0.0
	for i := 1; i < len(vectors); i++ {
		total += vector.Cosine(vectors[i-1], vectors[i])
	}
	return total / float64(len(vectors)-1)
}

func lexicalCoherence(doc *nlp.Doc) float64 {
	sentences := make([][]string, len(doc.Sentences))
	for i, s := range doc.Sentences {
		for _, t := range doc.SentenceTokens(s) {
			if !t.IsPunct && !t.IsStop {
				sentences[i] = append(sentences[i], strings.ToLower(t.Lemma))
			}
		}
	}
	corpus := tfidf.NewCorpus(sentences)
	prev := corpus.Vector(sentences[0])
	total := 0.0
	for _, s := range sentences[1:] {
		cur := corpus.Vector(s)
		total += tfidf.Cosine(prev, cur)
		prev = cur
	}
	return total / float64(len(sentences)-1)
}

// Uncertainty counts tokens that hedge, such as "maybe" or "seem".
func Uncertainty(in *Input) Count {
	return in.count(in.countTokensIn(in.Res.Uncertainty))
}

// LexicalAccessDifficulty counts tokens that signal word-finding trouble,
// such as "remember".
func LexicalAccessDifficulty(in *Input) Count {
	return in.count(in.countTokensIn(in.Res.Difficulty))
}

// Formulaic counts formulaic expressions anywhere in the transcript.
func Formulaic(in *Input) Count {
	return in.count(text.CountAll(in.Text, in.Res.Formulaic))
}

// Modal counts modalizing expressions. Its relative frequency is over the
// non-punctuation, non-space tokens rather than the word count.
func Modal(in *Input) Count {
	n := text.CountAll(in.Text, in.Res.Modal)
	words := 0
	for _, t := range in.Doc.Tokens {
		if !t.IsPunct && !t.IsSpace {
			words++
		}
	}
	return Count{Absolute: n, Relative: metric.Frequency(n, words)}
}

// Fillers counts filler expressions such as "you know".
func Fillers(in *Input) Count {
	return in.count(text.CountAll(in.Text, in.Res.Fillers))
}

func (in *Input) countTokensIn(set map[string]struct{}) int {
	n := 0
	for _, t := range in.Doc.Tokens {
		if _, ok := set[in.Language().Lower(t.Text)]; ok {
			n++
		}
	}
	return n
}
