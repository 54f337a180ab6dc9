// Package nlp defines the annotated document every feature extractor reads
// and the Provider contract that produces it.
package nlp

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/vector"
)

// ErrProvider wraps every failure reported by an annotation provider.
var ErrProvider = errors.New("nlp provider")

// Token is one annotated token. Head is an index into Doc.Tokens; the root of
// a sentence is its own head.
type Token struct {
	Text       string    `json:"text"`
	Lemma      string    `json:"lemma"`
	POS        string    `json:"pos"`
	Tag        string    `json:"tag"`
	Dep        string    `json:"dep"`
	Head       int       `json:"head"`
	NLefts     int       `json:"n_lefts"`
	NRights    int       `json:"n_rights"`
	IsStop     bool      `json:"is_stop"`
	IsPunct    bool      `json:"is_punct"`
	IsAlpha    bool      `json:"is_alpha"`
	IsSpace    bool      `json:"is_space"`
	IsOOV      bool      `json:"is_oov"`
	Vector     []float64 `json:"vector,omitempty"`
	VectorNorm float64   `json:"vector_norm"`
}

// Span is a half-open token range [Start, End). Vector is optional.
type Span struct {
	Start  int       `json:"start"`
	End    int       `json:"end"`
	Vector []float64 `json:"vector,omitempty"`
}

func (s Span) Len() int { return s.End - s.Start }

// Doc is a fully annotated transcript.
type Doc struct {
	Model      string  `json:"model"`
	Tokens     []Token `json:"tokens"`
	Sentences  []Span  `json:"sentences"`
	NounChunks []Span  `json:"noun_chunks"`
}

// Provider annotates raw text. Implementations must be safe for concurrent
// use by several batch workers.
type Provider interface {
	Annotate(ctx context.Context, text string, l lang.Language) (*Doc, error)
}

// Validate checks that heads and spans reference existing tokens.
func (d *Doc) Validate() error {
	n := len(d.Tokens)
	for i, t := range d.Tokens {
		if t.Head < 0 || t.Head >= n {
			return fmt.Errorf("%w: token %d has head %d outside [0,%d)", ErrProvider, i, t.Head, n)
		}
	}
	for _, spans := range [][]Span{d.Sentences, d.NounChunks} {
		for _, s := range spans {
			if s.Start < 0 || s.End > n || s.Start > s.End {
				return fmt.Errorf("%w: span [%d,%d) outside %d tokens", ErrProvider, s.Start, s.End, n)
			}
		}
	}
	return nil
}

// SentenceTokens returns the tokens covered by s.
func (d *Doc) SentenceTokens(s Span) []Token {
	return d.Tokens[s.Start:s.End]
}

// Children returns the indices of the tokens whose head is i, in order.
func (d *Doc) Children(i int) []int {
	var out []int
	for j, t := range d.Tokens {
		if j != i && t.Head == i {
			out = append(out, j)
		}
	}
	return out
}

// SpanVector returns s.Vector, or the centroid of the token vectors in s
// when the provider did not supply one.
func (d *Doc) SpanVector(s Span) []float64 {
	if len(s.Vector) > 0 {
		return s.Vector
	}
	vectors := make([][]float64, 0, s.Len())
	for _, t := range d.SentenceTokens(s) {
		vectors = append(vectors, t.Vector)
	}
	return vector.Centroid(vectors)
}

// HasVector reports whether t carries a non-zero embedding.
func (t Token) HasVector() bool {
	if t.VectorNorm > 0 {
		return true
	}
	return vector.Norm(t.Vector) > 0
}
