package features

import (
	"math"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/metric"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/cmsdko/lingua/internal/norms"
	"github.com/cmsdko/lingua/internal/text"
)

// Field is one named output value.
type Field struct {
	Key   string
	Value metric.Value
}

// POSCount is one row of the part-of-speech distribution.
type POSCount struct {
	Label      string
	Count      int
	Percentage float64
}

// POSDistribution counts tokens per coarse tag, as a percentage of all
// tokens. Every translated label is present, with zero counts when absent.
// Tags without a translation follow in order of first appearance.
func POSDistribution(doc *nlp.Doc) []POSCount {
	counts := make(map[string]int)
	var extra []string
	known := make(map[string]bool)
	for _, l := range lang.POSLabels() {
		known[l.Tag] = true
	}
	for _, t := range doc.Tokens {
		if !known[t.POS] && counts[t.POS] == 0 {
			extra = append(extra, t.POS)
		}
		counts[t.POS]++
	}

	total := len(doc.Tokens)
	row := func(tag string) POSCount {
		c := POSCount{Label: lang.POSLabel(tag), Count: counts[tag]}
		if total > 0 {
			c.Percentage = float64(c.Count) / float64(total) * 100
		}
		return c
	}
	out := make([]POSCount, 0, len(lang.POSLabels())+len(extra))
	for _, l := range lang.POSLabels() {
		out = append(out, row(l.Tag))
	}
	for _, tag := range extra {
		out = append(out, row(tag))
	}
	return out
}

// CountPOS counts tokens with the given coarse tag.
func CountPOS(doc *nlp.Doc, pos string) int {
	n := 0
	for _, t := range doc.Tokens {
		if t.POS == pos {
			n++
		}
	}
	return n
}

// OpenClosed counts open-class (noun, verb, adjective, adverb) and
// closed-class (conjunction, pronoun, determiner, adposition) tokens.
func OpenClosed(doc *nlp.Doc) (open, closed int) {
	for _, t := range doc.Tokens {
		switch t.POS {
		case "NOUN", "VERB", "ADJ", "ADV":
			open++
		case "CONJ", "PRON", "DET", "ADP":
			closed++
		}
	}
	return open, closed
}

// InflectedVerbs counts verbs that are not in their base form.
func InflectedVerbs(doc *nlp.Doc) int {
	n := 0
	for _, t := range doc.Tokens {
		if t.POS == "VERB" && t.Tag != "VB" {
			n++
		}
	}
	return n
}

// Gerunds counts present participles. Only English tags mark them.
func Gerunds(in *Input) metric.Value {
	if in.Language() != lang.English {
		return metric.Unsupported()
	}
	n := 0
	for _, t := range in.Doc.Tokens {
		if t.Tag == "VBG" {
			n++
		}
	}
	return metric.Int(n)
}

// RatioInputs are the counts the part-of-speech ratios are built from.
type RatioInputs struct {
	Verbs, Nouns, Pronouns int
	Inflected              int
	Open, Closed           int
	Gerunds                metric.Value
	Words                  int
}

// Ratios computes the nine part-of-speech ratios. A zero denominator yields
// NotApplicable. Gerund ratios are Unsupported when gerunds are.
func Ratios(r RatioInputs) []Field {
	gerundRatio := func(den int) metric.Value {
		g, ok := r.Gerunds.Float64()
		if !ok {
			return r.Gerunds
		}
		return metric.Ratio(g, float64(den))
	}
	f := func(num, den int) metric.Value {
		return metric.Ratio(float64(num), float64(den))
	}
	return []Field{
		{"Pronoms/(Noms+Pronoms)", f(r.Pronouns, r.Nouns+r.Pronouns)},
		{"Noms/(Noms+Pronoms)", f(r.Nouns, r.Nouns+r.Pronouns)},
		{"Noms/(Noms+Verbes)", f(r.Nouns, r.Nouns+r.Verbs)},
		{"Verbes/(Noms+Verbes)", f(r.Verbs, r.Nouns+r.Verbs)},
		{"Verbes_avec_inflexions/Total_Verbes", f(r.Inflected, r.Verbs)},
		{"Mots_de_classe_ouverte/Total_Mots", f(r.Open, r.Words)},
		{"Mots_de_classe_fermee/Total_Mots", f(r.Closed, r.Words)},
		{"Gerondifs/Total_Verbes", gerundRatio(r.Verbs)},
		{"Gerondifs/Total_Mots", gerundRatio(r.Words)},
	}
}

// DeicticCounts holds deictic pronoun counts by reference type.
type DeicticCounts struct {
	Spatial, Personal, Temporal int
}

func (d DeicticCounts) Total() int { return d.Spatial + d.Personal + d.Temporal }

// Deictic counts lowercased tokens found in the deictic tables.
func Deictic(in *Input) DeicticCounts {
	var d DeicticCounts
	tables := in.Res.Deictic
	for _, t := range in.Doc.Tokens {
		w := in.Language().Lower(t.Text)
		if _, ok := tables.Spatial[w]; ok {
			d.Spatial++
		}
		if _, ok := tables.Personal[w]; ok {
			d.Personal++
		}
		if _, ok := tables.Temporal[w]; ok {
			d.Temporal++
		}
	}
	return d
}

// Indefinite counts indefinite terms and their ratio to alphabetic tokens.
// The ratio is 0 when there is no alphabetic token.
func Indefinite(in *Input) (count int, ratio float64) {
	alpha := 0
	for _, t := range in.Doc.Tokens {
		if t.IsAlpha {
			alpha++
		}
		if _, ok := in.Res.IndefiniteTerms[t.Text]; ok {
			count++
		}
	}
	if alpha == 0 {
		return count, 0
	}
	return count, float64(count) / float64(alpha)
}

// MATTR is the moving-average type-token ratio of the alphabetic tokens over
// windows of the given size, with stride 1. It is 0 when the text is shorter
// than the window.
func MATTR(doc *nlp.Doc, window int) float64 {
	var words []string
	for _, t := range doc.Tokens {
		if t.IsAlpha {
			words = append(words, t.Text)
		}
	}
	if window <= 0 || len(words) < window {
		return 0
	}

	// Slide the window, keeping type counts incrementally.
	freq := make(map[string]int, window)
	for _, w := range words[:window] {
		freq[w]++
	}
	sum := float64(len(freq)) / float64(window)
	windows := 1
	for i := window; i < len(words); i++ {
		out := words[i-window]
		if freq[out]--; freq[out] == 0 {
			delete(freq, out)
		}
		freq[words[i]]++
		sum += float64(len(freq)) / float64(window)
		windows++
	}
	return sum / float64(windows)
}

// UniqueWords counts distinct whitespace words of the cleaned text.
func UniqueWords(in *Input) int {
	return distinct(text.Words(in.Clean))
}

// LemmaHapaxes counts the lemmas that occur exactly once in lemmas. Paired
// with distinct(lemmas) it never exceeds the type count.
func LemmaHapaxes(lemmas []string) int {
	freq := make(map[string]int, len(lemmas))
	for _, l := range lemmas {
		freq[l]++
	}
	n := 0
	for _, c := range freq {
		if c == 1 {
			n++
		}
	}
	return n
}

// Honore computes R = 100·ln(N) / (1 − V1/V). It is Undefined when N ≤ 0,
// V is 0 or every type is a hapax (V1 >= V).
func Honore(n, v, v1 int) metric.Value {
	if n <= 0 || v <= 0 || v1 >= v {
		return metric.Undefined()
	}
	return metric.Float(100 * math.Log(float64(n)) / (1 - float64(v1)/float64(v)))
}

// Brunet computes W = N^(V^−0.165). It is NotApplicable unless N and V are
// positive.
func Brunet(n, v int) metric.Value {
	if n <= 0 || v <= 0 {
		return metric.NotApplicable()
	}
	return metric.Float(math.Pow(float64(n), math.Pow(float64(v), -0.165)))
}

// NormWords are the word lists psycholinguistic norms are averaged over.
type NormWords struct {
	Words, Nouns, Verbs, Adjectives []string
}

// NormCategories collects non-stop, non-punctuation token texts, and the
// noun, verb and adjective subsets.
func NormCategories(doc *nlp.Doc) NormWords {
	var nw NormWords
	for _, t := range doc.Tokens {
		if t.IsStop || t.IsPunct {
			continue
		}
		nw.Words = append(nw.Words, t.Text)
		switch t.POS {
		case "NOUN":
			nw.Nouns = append(nw.Nouns, t.Text)
		case "VERB":
			nw.Verbs = append(nw.Verbs, t.Text)
		case "ADJ":
			nw.Adjectives = append(nw.Adjectives, t.Text)
		}
	}
	return nw
}

// Norms averages every norm over every word category. Norms exist for
// English only; a measure without a loaded table is NotApplicable.
func Norms(in *Input, set *norms.Set) []Field {
	nw := NormCategories(in.Doc)
	categories := []struct {
		suffix string
		words  []string
	}{
		{"mots", nw.Words},
		{"noms", nw.Nouns},
		{"verbes", nw.Verbs},
		{"adjectifs", nw.Adjectives},
	}

	out := make([]Field, 0, len(norms.Measures)*len(categories))
	for _, m := range norms.Measures {
		table, loaded := set.Table(m)
		for _, c := range categories {
			key := string(m) + "_moyenne_" + c.suffix
			switch {
			case in.Language() != lang.English:
				out = append(out, Field{key, metric.Unsupported()})
			case !loaded:
				out = append(out, Field{key, metric.NotApplicable()})
			default:
				out = append(out, Field{key, metric.Float(table.Mean(c.words))})
			}
		}
	}
	return out
}
