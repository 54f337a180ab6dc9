// Package tfidf weighs the lemmas of each sentence by how few other
// sentences of the same transcript use them. It is the lexical stand-in for
// sentence embeddings.
package tfidf

import "math"

// Corpus holds sentence frequencies of terms over one transcript.
type Corpus struct {
	df        map[string]int
	sentences int
}

// NewCorpus counts, for every term, the number of sentences containing it.
func NewCorpus(sentences [][]string) *Corpus {
	df := make(map[string]int)
	for _, s := range sentences {
		seen := make(map[string]struct{}, len(s))
		for _, term := range s {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	return &Corpus{df: df, sentences: len(sentences)}
}

// Vector weighs terms by relative frequency times log(1 + N/(1+df)), where N
// is the number of sentences.
func (c *Corpus) Vector(terms []string) map[string]float64 {
	v := make(map[string]float64, len(terms))
	if len(terms) == 0 {
		return v
	}
	for _, term := range terms {
		v[term]++
	}
	n := float64(len(terms))
	for term, count := range v {
		idf := math.Log(1 + float64(c.sentences)/(1+float64(c.df[term])))
		v[term] = count / n * idf
	}
	return v
}

// Cosine is the cosine similarity of two sparse vectors, 0 when either is
// zero.
func Cosine(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	dot := 0.0
	for term, x := range a {
		dot += x * b[term]
	}
	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

func norm(v map[string]float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
