package features

import (
	"testing"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/metric"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/stretchr/testify/require"
)

// tok builds a token. Punctuation and alphabetic flags follow from pos.
func tok(text, pos, tag, dep string, head int) nlp.Token {
	return nlp.Token{
		Text:    text,
		Lemma:   text,
		POS:     pos,
		Tag:     tag,
		Dep:     dep,
		Head:    head,
		IsPunct: pos == "PUNCT",
		IsAlpha: pos != "PUNCT" && pos != "NUM",
	}
}

// oneSentence wraps tokens in a document with a single sentence.
func oneSentence(tokens ...nlp.Token) *nlp.Doc {
	return &nlp.Doc{Tokens: tokens, Sentences: []nlp.Span{{Start: 0, End: len(tokens)}}}
}

func input(t *testing.T, l lang.Language, raw string, doc *nlp.Doc) *Input {
	t.Helper()
	res, err := lang.For(l)
	require.NoError(t, err)
	if doc == nil {
		doc = &nlp.Doc{}
	}
	return NewInput(raw, res, doc)
}

// boyDoc is "the boy is taking a cookie ." with a hand-written parse.
func boyDoc() *nlp.Doc {
	d := oneSentence(
		tok("the", "DET", "DT", "det", 1),
		tok("boy", "NOUN", "NN", "nsubj", 3),
		tok("is", "AUX", "VBZ", "aux", 3),
		tok("taking", "VERB", "VBG", "ROOT", 3),
		tok("a", "DET", "DT", "det", 5),
		tok("cookie", "NOUN", "NN", "dobj", 3),
		tok(".", "PUNCT", ".", "punct", 3),
	)
	d.Tokens[0].IsStop = true
	d.Tokens[2].IsStop = true
	d.Tokens[4].IsStop = true
	d.Tokens[1].NLefts = 1
	d.Tokens[3].NLefts = 2
	d.Tokens[3].NRights = 2
	d.Tokens[5].NLefts = 1
	d.NounChunks = []nlp.Span{{Start: 0, End: 2}, {Start: 4, End: 6}}
	return d
}

func fieldMap(fields []Field) map[string]metric.Value {
	m := make(map[string]metric.Value, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}
