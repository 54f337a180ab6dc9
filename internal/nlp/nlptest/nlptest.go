// Package nlptest provides a deterministic nlp.Provider for tests. It knows a
// small closed vocabulary and tags every other word as a singular noun.
package nlptest

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/cmsdko/lingua/internal/text"
	"github.com/cmsdko/lingua/internal/vector"
)

const Model = "stub_sm"

type entry struct{ pos, tag, lemma string }

var vocabulary = map[string]entry{
	"the": {"DET", "DT", "the"}, "a": {"DET", "DT", "a"}, "an": {"DET", "DT", "an"},
	"this": {"DET", "DT", "this"}, "that": {"DET", "DT", "that"},
	"le": {"DET", "DT", "le"}, "la": {"DET", "DT", "la"}, "un": {"DET", "DT", "un"},
	"he": {"PRON", "PRP", "he"}, "she": {"PRON", "PRP", "she"}, "it": {"PRON", "PRP", "it"},
	"i": {"PRON", "PRP", "i"}, "you": {"PRON", "PRP", "you"}, "they": {"PRON", "PRP", "they"},
	"il": {"PRON", "PRP", "il"}, "elle": {"PRON", "PRP", "elle"},
	"is": {"AUX", "VBZ", "be"}, "are": {"AUX", "VBP", "be"}, "was": {"AUX", "VBD", "be"},
	"takes": {"VERB", "VBZ", "take"}, "taking": {"VERB", "VBG", "take"}, "took": {"VERB", "VBD", "take"},
	"falls": {"VERB", "VBZ", "fall"}, "falling": {"VERB", "VBG", "fall"}, "fell": {"VERB", "VBD", "fall"},
	"reaching": {"VERB", "VBG", "reach"}, "washing": {"VERB", "VBG", "wash"}, "dries": {"VERB", "VBZ", "dry"},
	"overflowing": {"VERB", "VBG", "overflow"}, "see": {"VERB", "VB", "see"}, "think": {"VERB", "VBP", "think"},
	"tombe": {"VERB", "VBZ", "tomber"}, "prend": {"VERB", "VBZ", "prendre"},
	"on": {"ADP", "IN", "on"}, "for": {"ADP", "IN", "for"}, "from": {"ADP", "IN", "from"}, "in": {"ADP", "IN", "in"},
	"dans": {"ADP", "IN", "dans"}, "sur": {"ADP", "IN", "sur"},
	"and": {"CCONJ", "CC", "and"}, "but": {"CCONJ", "CC", "but"}, "et": {"CCONJ", "CC", "et"},
	"little": {"ADJ", "JJ", "little"}, "big": {"ADJ", "JJ", "big"}, "petit": {"ADJ", "JJ", "petit"},
	"now": {"ADV", "RB", "now"}, "there": {"ADV", "RB", "there"}, "maybe": {"ADV", "RB", "maybe"},
	"cookies": {"NOUN", "NNS", "cookie"}, "dishes": {"NOUN", "NNS", "dish"},
	"uh": {"INTJ", "UH", "uh"}, "um": {"INTJ", "UH", "um"}, "euh": {"INTJ", "UH", "euh"},
}

// Provider is a deterministic stub. Err, when set, is returned by every call.
type Provider struct {
	Err   error
	calls atomic.Int64
}

func New() *Provider { return &Provider{} }

// Calls returns the number of Annotate invocations.
func (p *Provider) Calls() int { return int(p.calls.Load()) }

// Annotate splits on whitespace, detaches trailing punctuation, ends a
// sentence at every ".", "!" or "?" and makes the first verb of each sentence
// its root. Every other token attaches to the root.
func (p *Provider) Annotate(ctx context.Context, raw string, l lang.Language) (*nlp.Doc, error) {
	p.calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}
	res, err := lang.For(l)
	if err != nil {
		return nil, err
	}

	doc := &nlp.Doc{Model: Model}
	start := 0
	closeSentence := func() {
		if start < len(doc.Tokens) {
			sentence := nlp.Span{Start: start, End: len(doc.Tokens)}
			link(doc, sentence)
			doc.Sentences = append(doc.Sentences, sentence)
		}
		start = len(doc.Tokens)
	}

	for _, field := range strings.Fields(raw) {
		word := strings.TrimRight(field, ".,!?;:")
		if word != "" {
			doc.Tokens = append(doc.Tokens, token(word, res))
		}
		for _, r := range field[len(word):] {
			doc.Tokens = append(doc.Tokens, nlp.Token{
				Text: string(r), Lemma: string(r), POS: "PUNCT", Tag: string(r), IsPunct: true,
			})
			if r == '.' || r == '!' || r == '?' {
				closeSentence()
			}
		}
	}
	closeSentence()
	return doc, nil
}

func token(word string, res *lang.Resources) nlp.Token {
	lower := strings.ToLower(word)
	e, ok := vocabulary[lower]
	if !ok {
		e = entry{"NOUN", "NN", lower}
	}
	v := vector.DefaultHasher.Embed(lower)
	return nlp.Token{
		Text:       word,
		Lemma:      e.lemma,
		POS:        e.pos,
		Tag:        e.tag,
		IsStop:     res.IsStopWord(lower),
		IsAlpha:    text.IsAlpha(word),
		Vector:     v,
		VectorNorm: vector.Norm(v),
	}
}

func link(doc *nlp.Doc, s nlp.Span) {
	root := s.Start
	for i := s.Start; i < s.End; i++ {
		if doc.Tokens[i].POS == "VERB" {
			root = i
			break
		}
	}
	for i := s.Start; i < s.End; i++ {
		t := &doc.Tokens[i]
		t.Head = root
		switch {
		case i == root:
			t.Dep = "ROOT"
		case t.IsPunct:
			t.Dep = "punct"
		case t.POS == "DET":
			t.Dep = "det"
			if i+1 < s.End && doc.Tokens[i+1].POS == "NOUN" {
				t.Head = i + 1
			}
		case t.POS == "NOUN" || t.POS == "PRON":
			if i < root {
				t.Dep = "nsubj"
			} else {
				t.Dep = "dobj"
			}
		case t.POS == "AUX":
			t.Dep = "aux"
		case t.POS == "ADP":
			t.Dep = "prep"
		case t.POS == "CCONJ":
			t.Dep = "cc"
		default:
			t.Dep = "dep"
		}
		if i != t.Head {
			if i < t.Head {
				doc.Tokens[t.Head].NLefts++
			} else {
				doc.Tokens[t.Head].NRights++
			}
		}
	}
	// A determiner followed by a noun forms a chunk, as does a bare noun.
	for i := s.Start; i < s.End; i++ {
		switch {
		case doc.Tokens[i].POS == "DET" && i+1 < s.End && doc.Tokens[i+1].POS == "NOUN":
			doc.NounChunks = append(doc.NounChunks, nlp.Span{Start: i, End: i + 2})
			i++
		case doc.Tokens[i].POS == "NOUN":
			doc.NounChunks = append(doc.NounChunks, nlp.Span{Start: i, End: i + 1})
		}
	}
}
