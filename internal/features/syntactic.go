package features

import (
	"strings"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/metric"
	"github.com/cmsdko/lingua/internal/nlp"
)

// OtherDependency labels the bucket of relations missing from the
// translation table.
const OtherDependency = "Autre"

// Dependencies counts tokens per dependency relation. Every translated
// relation is present, with zero counts when absent, and every other relation
// falls into the OtherDependency bucket, so the keys never depend on the
// text. All absolute counts come first, then the frequencies relative to the
// word count.
func Dependencies(in *Input) []Field {
	labels := lang.DependencyLabels()
	counts := make(map[string]int, len(labels))
	for _, l := range labels {
		counts[l.Tag] = 0
	}
	other := 0
	for _, t := range in.Doc.Tokens {
		if _, ok := counts[t.Dep]; ok {
			counts[t.Dep]++
		} else {
			other++
		}
	}

	words := in.WordCount()
	out := make([]Field, 0, 2*len(labels)+2)
	for _, l := range labels {
		out = append(out, Field{"Dep_absolue_" + l.Label, metric.Int(counts[l.Tag])})
	}
	out = append(out, Field{"Dep_absolue_" + OtherDependency, metric.Int(other)})
	for _, l := range labels {
		out = append(out, Field{"Dep_relative_" + l.Label, metric.Frequency(counts[l.Tag], words)})
	}
	return append(out, Field{"Dep_relative_" + OtherDependency, metric.Frequency(other, words)})
}

// DependencyLengths returns the mean and maximum distance between a token
// and its head. Both are 0 for an empty document.
func DependencyLengths(doc *nlp.Doc) (mean float64, longest int) {
	if len(doc.Tokens) == 0 {
		return 0, 0
	}
	sum := 0
	for i, t := range doc.Tokens {
		d := i - t.Head
		if d < 0 {
			d = -d
		}
		sum += d
		if d > longest {
			longest = d
		}
	}
	return float64(sum) / float64(len(doc.Tokens)), longest
}

// ChildCounts sums left and right dependents over all tokens.
type ChildCounts struct {
	Left, Right         int
	MeanLeft, MeanRight float64
}

// Children sums dependents and averages them over the word count.
func Children(in *Input) ChildCounts {
	var c ChildCounts
	for _, t := range in.Doc.Tokens {
		c.Left += t.NLefts
		c.Right += t.NRights
	}
	if words := in.WordCount(); words > 0 {
		c.MeanLeft = float64(c.Left) / float64(words)
		c.MeanRight = float64(c.Right) / float64(words)
	}
	return c
}

// Subordinate counts each subordinate-clause relation, as <Label>_absolu and
// <Label>_relatif pairs.
func Subordinate(in *Input) []Field {
	counts := make(map[string]int)
	for _, t := range in.Doc.Tokens {
		counts[t.Dep]++
	}
	labels := lang.SubordinateLabels()
	out := make([]Field, 0, 2*len(labels))
	for _, l := range labels {
		c := in.count(counts[l.Tag])
		out = append(out,
			Field{l.Label + "_absolu", metric.Int(c.Absolute)},
			Field{l.Label + "_relatif", c.Relative})
	}
	return out
}

// MeanSentenceLength is the mean number of tokens per sentence.
func MeanSentenceLength(doc *nlp.Doc) float64 {
	if len(doc.Sentences) == 0 {
		return 0
	}
	total := 0
	for _, s := range doc.Sentences {
		total += s.Len()
	}
	return float64(total) / float64(len(doc.Sentences))
}

// SentenceTypes counts sentence shapes. Incomplete sentences lack a verb or
// a subject. Prepositional sentences hold an adposition with an object
// dependent.
type SentenceTypes struct {
	Incomplete    Count
	Prepositional Count
	Verbal        Count
}

func Sentences(in *Input) SentenceTypes {
	doc := in.Doc
	children := childIndex(doc)
	var incomplete, prepositional, verbal int
	for _, s := range doc.Sentences {
		hasVerb, hasSubject, hasPrepObject := false, false, false
		for i := s.Start; i < s.End; i++ {
			t := doc.Tokens[i]
			if t.POS == "VERB" {
				hasVerb = true
			}
			if strings.Contains(t.Dep, "subj") {
				hasSubject = true
			}
			if t.POS == "ADP" && !hasPrepObject {
				for _, c := range children[i] {
					if dep := doc.Tokens[c].Dep; dep == "pobj" || dep == "dobj" {
						hasPrepObject = true
						break
					}
				}
			}
		}
		if !(hasVerb && hasSubject) {
			incomplete++
		}
		if hasPrepObject {
			prepositional++
		}
		if hasVerb {
			verbal++
		}
	}
	return SentenceTypes{
		Incomplete:    in.count(incomplete),
		Prepositional: in.count(prepositional),
		Verbal:        in.count(verbal),
	}
}

// NounPhrases summarizes the noun chunks of the document.
type NounPhrases struct {
	Count      int
	MeanLength float64
	Relative   metric.Value
}

func NounChunks(in *Input) NounPhrases {
	chunks := in.Doc.NounChunks
	np := NounPhrases{Count: len(chunks), Relative: metric.Frequency(len(chunks), in.WordCount())}
	if len(chunks) > 0 {
		total := 0
		for _, c := range chunks {
			total += c.Len()
		}
		np.MeanLength = float64(total) / float64(len(chunks))
	}
	return np
}

// Tenses counts present and past verbs from English fine-grained tags.
// Future is periphrastic in English and always 0. Other languages are
// Unsupported.
func Tenses(in *Input) []Field {
	keys := []string{"present", "past", "future"}
	if in.Language() != lang.English {
		out := make([]Field, 0, 2*len(keys))
		for _, k := range keys {
			out = append(out,
				Field{"Nbre_verb_" + k + "_absolu", metric.Unsupported()},
				Field{"Nbre_verb_" + k + "_relatif", metric.Unsupported()})
		}
		return out
	}

	counts := map[string]int{}
	for _, t := range in.Doc.Tokens {
		if t.POS != "VERB" {
			continue
		}
		switch t.Tag {
		case "VBP", "VBZ", "VBG":
			counts["present"]++
		case "VBD", "VBN":
			counts["past"]++
		}
	}
	out := make([]Field, 0, 2*len(keys))
	for _, k := range keys {
		c := in.count(counts[k])
		out = append(out,
			Field{"Nbre_verb_" + k + "_absolu", metric.Int(c.Absolute)},
			Field{"Nbre_verb_" + k + "_relatif", c.Relative})
	}
	return out
}

// ClausesPerSentence is the mean number of clausal subjects and complements
// per sentence.
func ClausesPerSentence(doc *nlp.Doc) float64 {
	if len(doc.Sentences) == 0 {
		return 0
	}
	clauses := 0
	for _, s := range doc.Sentences {
		for _, t := range doc.SentenceTokens(s) {
			switch t.Dep {
			case "csubj", "ccomp", "xcomp":
				clauses++
			}
		}
	}
	return float64(clauses) / float64(len(doc.Sentences))
}

// NounsWithDeterminers is the share of nouns that govern a determiner.
func NounsWithDeterminers(doc *nlp.Doc) float64 {
	children := childIndex(doc)
	nouns, withDet := 0, 0
	for i, t := range doc.Tokens {
		if t.POS != "NOUN" {
			continue
		}
		nouns++
		for _, c := range children[i] {
			if doc.Tokens[c].Dep == "det" {
				withDet++
				break
			}
		}
	}
	if nouns == 0 {
		return 0
	}
	return float64(withDet) / float64(nouns)
}

// Coordinated counts sentences holding a coordinating conjunction.
func Coordinated(in *Input) Count {
	doc := in.Doc
	n := 0
	for _, s := range doc.Sentences {
		for _, t := range doc.SentenceTokens(s) {
			if _, ok := in.Res.Coordination[in.Language().Lower(t.Text)]; ok {
				n++
				break
			}
		}
	}
	return in.count(n)
}

// childIndex lists the dependents of every token.
func childIndex(doc *nlp.Doc) [][]int {
	children := make([][]int, len(doc.Tokens))
	for i, t := range doc.Tokens {
		if t.Head != i {
			children[t.Head] = append(children[t.Head], i)
		}
	}
	return children
}
