// Package offline annotates English transcripts in-process, without a model
// server. Tagging and sentence segmentation come from prose, lemmas from the
// golem dictionaries and embeddings from hashed character n-grams.
//
// prose has no dependency parser, so heads and relations are assigned by a
// small rule set anchored on the first verb of each sentence. The syntactic
// measures computed from an offline document are approximations.
package offline

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/cmsdko/lingua/internal/text"
	"github.com/cmsdko/lingua/internal/vector"
	"github.com/jdkato/prose/v2"
)

// ModelName is reported in the SpaCy_Model field of offline records.
const ModelName = "prose-golem-en"

// Provider is the offline nlp.Provider. The zero value is not usable; call New.
type Provider struct {
	hasher vector.Hasher
}

func New() *Provider {
	return &Provider{hasher: vector.DefaultHasher}
}

// Annotate tags and parses text. Only English is supported.
func (p *Provider) Annotate(ctx context.Context, raw string, l lang.Language) (*nlp.Doc, error) {
	if l != lang.English {
		return nil, fmt.Errorf("%w: offline provider handles English only, got %q", lang.ErrUnsupportedLanguage, string(l))
	}
	res, err := lang.For(l)
	if err != nil {
		return nil, err
	}
	lm, err := lang.Lemmatizer(l)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nlp.ErrProvider, err)
	}

	segmented, err := prose.NewDocument(raw,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("%w: segment: %v", nlp.ErrProvider, err)
	}

	doc := &nlp.Doc{Model: ModelName}
	for _, sent := range segmented.Sentences() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tagged, err := prose.NewDocument(sent.Text,
			prose.WithSegmentation(false),
			prose.WithExtraction(false))
		if err != nil {
			return nil, fmt.Errorf("%w: tag: %v", nlp.ErrProvider, err)
		}
		ptoks := tagged.Tokens()
		if len(ptoks) == 0 {
			continue
		}

		start := len(doc.Tokens)
		for _, pt := range ptoks {
			lower := strings.ToLower(pt.Text)
			pos := universalPOS(pt.Tag)
			lemma := lower
			if pos != "PUNCT" {
				lemma = lm.Lemma(lower)
			}
			tok := nlp.Token{
				Text:    pt.Text,
				Lemma:   lemma,
				POS:     pos,
				Tag:     pt.Tag,
				IsStop:  res.IsStopWord(lower),
				IsPunct: pos == "PUNCT" || text.IsPunct(pt.Text),
				IsAlpha: text.IsAlpha(pt.Text),
				IsOOV:   !lm.InDict(lower),
			}
			if !tok.IsPunct {
				tok.Vector = p.hasher.Embed(lower)
				tok.VectorNorm = vector.Norm(tok.Vector)
			}
			doc.Tokens = append(doc.Tokens, tok)
		}
		end := len(doc.Tokens)

		attach(doc.Tokens[start:end], start)
		doc.Sentences = append(doc.Sentences, nlp.Span{Start: start, End: end})
		doc.NounChunks = append(doc.NounChunks, nounChunks(doc.Tokens[start:end], start)...)
	}
	countChildren(doc.Tokens)
	return doc, nil
}

// universalPOS maps a Penn Treebank tag onto the universal coarse tagset.
func universalPOS(tag string) string {
	switch tag {
	case "NN", "NNS":
		return "NOUN"
	case "NNP", "NNPS":
		return "PROPN"
	case "VB", "VBD", "VBG", "VBN", "VBP", "VBZ":
		return "VERB"
	case "MD":
		return "AUX"
	case "JJ", "JJR", "JJS":
		return "ADJ"
	case "RB", "RBR", "RBS", "WRB":
		return "ADV"
	case "PRP", "PRP$", "WP", "WP$", "EX":
		return "PRON"
	case "DT", "PDT", "WDT":
		return "DET"
	case "IN", "RP":
		return "ADP"
	case "CC":
		return "CCONJ"
	case "CD":
		return "NUM"
	case "UH":
		return "INTJ"
	case "TO", "POS":
		return "PART"
	case "FW":
		return "X"
	case "SYM", "$", "#":
		return "SYM"
	}
	return "PUNCT"
}

var modifierDep = map[string]string{
	"DET": "det",
	"ADJ": "amod",
	"NUM": "nummod",
}

// attach assigns heads and relations within one sentence. offset is the
// index of the sentence's first token in the document.
func attach(toks []nlp.Token, offset int) {
	root := 0
	for i, t := range toks {
		if t.POS == "VERB" {
			root = i
			break
		}
	}
	nextNominal := func(i int) int {
		for j := i + 1; j < len(toks); j++ {
			switch toks[j].POS {
			case "NOUN", "PROPN", "PRON":
				return j
			case "VERB", "ADP", "PUNCT", "CCONJ":
				return -1
			}
		}
		return -1
	}

	for i := range toks {
		t := &toks[i]
		head, dep := root, "dep"
		switch {
		case i == root:
			dep = "ROOT"
		case t.POS == "PUNCT":
			dep = "punct"
		case t.POS == "DET" || t.POS == "ADJ" || t.POS == "NUM":
			dep = modifierDep[t.POS]
			if j := nextNominal(i); j >= 0 {
				head = j
			}
		case t.POS == "NOUN" || t.POS == "PROPN" || t.POS == "PRON":
			switch {
			case i > 0 && toks[i-1].POS == "ADP":
				head, dep = i-1, "pobj"
			case i > 1 && toks[i-2].POS == "ADP" && toks[i-1].POS != "VERB":
				head, dep = i-2, "pobj"
			case i < root:
				dep = "nsubj"
			default:
				dep = "dobj"
			}
		case t.POS == "ADP":
			dep = "prep"
		case t.POS == "AUX":
			dep = "aux"
		case t.POS == "ADV":
			dep = "advmod"
		case t.POS == "CCONJ":
			dep = "cc"
		case t.POS == "VERB":
			dep = "conj"
			if t.Tag == "VB" && i > 0 && toks[i-1].Tag == "TO" {
				dep = "xcomp"
			}
		case t.POS == "PART":
			dep = "aux"
		}
		t.Dep = dep
		t.Head = head + offset
	}
}

// nounChunks returns maximal determiner/adjective/noun runs ending in a
// nominal.
func nounChunks(toks []nlp.Token, offset int) []nlp.Span {
	var out []nlp.Span
	start := -1
	lastNominal := -1
	flush := func() {
		if start >= 0 && lastNominal >= start {
			out = append(out, nlp.Span{Start: start + offset, End: lastNominal + 1 + offset})
		}
		start, lastNominal = -1, -1
	}
	for i, t := range toks {
		switch t.POS {
		case "DET", "ADJ", "NUM":
			if lastNominal >= 0 {
				flush()
			}
			if start < 0 {
				start = i
			}
		case "NOUN", "PROPN", "PRON":
			if start < 0 {
				start = i
			}
			lastNominal = i
		default:
			flush()
		}
	}
	flush()
	return out
}

func countChildren(toks []nlp.Token) {
	for i, t := range toks {
		if t.Head == i {
			continue
		}
		if i < t.Head {
			toks[t.Head].NLefts++
		} else {
			toks[t.Head].NRights++
		}
	}
}
