package features

import (
	"testing"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/metric"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boyText = "the boy is taking a cookie."

// TestDependencies checks that relations outside the table share one bucket
// and never add keys.
func TestDependencies(t *testing.T) {
	plain := Dependencies(input(t, lang.English, boyText, boyDoc()))

	doc := boyDoc()
	doc.Tokens = append(doc.Tokens,
		tok("x", "X", "XX", "nmod", 1),
		tok("his", "PRON", "PRP$", "poss", 1),
		tok("up", "ADP", "RP", "prt", 1),
	)
	fields := Dependencies(input(t, lang.English, boyText, doc))

	require.Len(t, fields, 46)
	require.Len(t, plain, 46)
	for i := range fields {
		assert.Equal(t, plain[i].Key, fields[i].Key)
	}
	assert.Equal(t, "Dep_absolue_Sujet_nominal", fields[0].Key)
	assert.Equal(t, "Dep_absolue_Autre", fields[22].Key)
	assert.Equal(t, "Dep_relative_Sujet_nominal", fields[23].Key)
	assert.Equal(t, "Dep_relative_Autre", fields[45].Key)

	m := fieldMap(fields)
	assert.Equal(t, metric.Int(3), m["Dep_absolue_Autre"])
	assert.Equal(t, metric.Int(0), fieldMap(plain)["Dep_absolue_Autre"])
	assert.Equal(t, metric.Int(2), m["Dep_absolue_Determinant"])
	assert.Equal(t, metric.Int(0), m["Dep_absolue_Negation"])
	v, ok := m["Dep_relative_Determinant"].Float64()
	require.True(t, ok)
	assert.InDelta(t, 2.0/6.0, v, 1e-12)
}

func TestDependencyLengthsAndChildren(t *testing.T) {
	mean, longest := DependencyLengths(boyDoc())
	assert.InDelta(t, 10.0/7.0, mean, 1e-12)
	assert.Equal(t, 3, longest)

	mean, longest = DependencyLengths(&nlp.Doc{})
	assert.Zero(t, mean)
	assert.Zero(t, longest)

	c := Children(input(t, lang.English, boyText, boyDoc()))
	assert.Equal(t, 4, c.Left)
	assert.Equal(t, 2, c.Right)
	assert.InDelta(t, 4.0/6.0, c.MeanLeft, 1e-12)
	assert.InDelta(t, 2.0/6.0, c.MeanRight, 1e-12)

	empty := Children(input(t, lang.English, "", boyDoc()))
	assert.Zero(t, empty.MeanLeft)
}

func TestSubordinate(t *testing.T) {
	doc := oneSentence(
		tok("want", "VERB", "VBP", "ROOT", 0),
		tok("to", "PART", "TO", "aux", 2),
		tok("go", "VERB", "VB", "xcomp", 0),
	)
	fields := Subordinate(input(t, lang.English, "want to go", doc))
	require.Len(t, fields, 10)
	assert.Equal(t, "Sujets_Clausaux_absolu", fields[0].Key)
	assert.Equal(t, "Sujets_Clausaux_relatif", fields[1].Key)

	m := fieldMap(fields)
	assert.Equal(t, metric.Int(1), m["Complements_Clausaux_Controles_absolu"])
	v, _ := m["Complements_Clausaux_Controles_relatif"].Float64()
	assert.InDelta(t, 1.0/3.0, v, 1e-12)
	assert.Equal(t, metric.Int(0), m["Modificateurs_Clauses_Adnominaux_absolu"])
}

// TestSentenceTypes mixes a complete clause with a verbless prepositional one.
func TestSentenceTypes(t *testing.T) {
	doc := boyDoc()
	n := len(doc.Tokens)
	doc.Tokens = append(doc.Tokens,
		tok("on", "ADP", "IN", "ROOT", n),
		tok("the", "DET", "DT", "det", n+2),
		tok("stool", "NOUN", "NN", "pobj", n),
		tok(".", "PUNCT", ".", "punct", n),
	)
	doc.Sentences = append(doc.Sentences, nlp.Span{Start: n, End: n + 4})
	in := input(t, lang.English, boyText+" on the stool.", doc)

	st := Sentences(in)
	assert.Equal(t, 1, st.Incomplete.Absolute)
	assert.Equal(t, 1, st.Prepositional.Absolute)
	assert.Equal(t, 1, st.Verbal.Absolute)
	v, _ := st.Verbal.Relative.Float64()
	assert.InDelta(t, 1.0/9.0, v, 1e-12)

	assert.InDelta(t, 5.5, MeanSentenceLength(doc), 1e-12)
	assert.InDelta(t, 1.0, NounsWithDeterminers(doc), 1e-12)
	assert.Zero(t, MeanSentenceLength(&nlp.Doc{}))
}

func TestNounChunks(t *testing.T) {
	np := NounChunks(input(t, lang.English, boyText, boyDoc()))
	assert.Equal(t, 2, np.Count)
	assert.InDelta(t, 2.0, np.MeanLength, 1e-12)
	v, _ := np.Relative.Float64()
	assert.InDelta(t, 2.0/6.0, v, 1e-12)

	none := NounChunks(input(t, lang.English, "", &nlp.Doc{}))
	assert.Zero(t, none.MeanLength)
	assert.Equal(t, metric.Float(0), none.Relative)
}

func TestTenses(t *testing.T) {
	doc := oneSentence(
		tok("takes", "VERB", "VBZ", "ROOT", 0),
		tok("fell", "VERB", "VBD", "conj", 0),
		tok("broken", "VERB", "VBN", "conj", 0),
		tok("will", "AUX", "MD", "aux", 0),
	)
	m := fieldMap(Tenses(input(t, lang.English, "takes fell broken will", doc)))
	assert.Equal(t, metric.Int(1), m["Nbre_verb_present_absolu"])
	assert.Equal(t, metric.Int(2), m["Nbre_verb_past_absolu"])
	assert.Equal(t, metric.Int(0), m["Nbre_verb_future_absolu"])
	v, _ := m["Nbre_verb_past_relatif"].Float64()
	assert.InDelta(t, 0.5, v, 1e-12)

	fr := Tenses(input(t, lang.French, "il prend", doc))
	require.Len(t, fr, 6)
	for _, f := range fr {
		assert.Equal(t, metric.KindUnsupported, f.Value.Kind(), f.Key)
	}
}

func TestClausesAndCoordination(t *testing.T) {
	doc := &nlp.Doc{
		Tokens: []nlp.Token{
			tok("I", "PRON", "PRP", "nsubj", 1),
			tok("think", "VERB", "VBP", "ROOT", 1),
			tok("he", "PRON", "PRP", "nsubj", 3),
			tok("falls", "VERB", "VBZ", "ccomp", 1),
			tok("And", "CCONJ", "CC", "cc", 5),
			tok("stops", "VERB", "VBZ", "ROOT", 5),
		},
		Sentences: []nlp.Span{{Start: 0, End: 4}, {Start: 4, End: 6}},
	}
	assert.InDelta(t, 0.5, ClausesPerSentence(doc), 1e-12)

	c := Coordinated(input(t, lang.English, "I think he falls. And stops.", doc))
	assert.Equal(t, 1, c.Absolute)
	v, _ := c.Relative.Float64()
	assert.InDelta(t, 1.0/6.0, v, 1e-12)
}
