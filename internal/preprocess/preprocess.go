// Package preprocess produces the cleaned, tokenized and lemmatized form of
// a transcript.
package preprocess

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/cmsdko/lingua/internal/output"
	"github.com/cmsdko/lingua/internal/text"
)

// ErrNoID is returned when neither the transcript nor the caller names the output.
var ErrNoID = errors.New("transcript ID missing; specify an output name")

// Result is written as <ID>_clean.json.
type Result struct {
	ID                string   `json:"ID"`
	Langue            string   `json:"Langue"`
	Model             string   `json:"SpaCy_Model"`
	Original          string   `json:"Texte_original"`
	Cleaned           string   `json:"Texte_nettoye"`
	Tokens            []string `json:"Texte_tokenizes"`
	TokensWithoutStop []string `json:"Texte_tokenizes_sans_stop"`
	Lemmas            []string `json:"Lemmes"`
	Stems             []string `json:"Racines"`
}

// Run cleans raw, annotates the cleaned text once and derives the token,
// lemma and stem lists from the annotation.
func Run(ctx context.Context, p nlp.Provider, id string, l lang.Language, raw string) (*Result, error) {
	res, err := lang.For(l)
	if err != nil {
		return nil, err
	}
	cleaned := text.Clean(raw)
	doc, err := p.Annotate(ctx, cleaned, l)
	if err != nil {
		return nil, fmt.Errorf("preprocess %s: %w", id, err)
	}

	tokens := make([]string, len(doc.Tokens))
	lemmas := make([]string, 0, len(doc.Tokens))
	for i, t := range doc.Tokens {
		tokens[i] = t.Text
		if !t.IsStop {
			lemmas = append(lemmas, t.Lemma)
		}
	}
	withoutStop := res.RemoveStopWords(tokens)
	stems, err := lang.StemTokens(withoutStop, l)
	if err != nil {
		return nil, err
	}

	return &Result{
		ID:                id,
		Langue:            string(l),
		Model:             doc.Model,
		Original:          raw,
		Cleaned:           cleaned,
		Tokens:            tokens,
		TokensWithoutStop: withoutStop,
		Lemmas:            lemmas,
		Stems:             stems,
	}, nil
}

// OutputName returns <name>_clean.json, where name is override when set and
// the transcript ID otherwise.
func OutputName(id, override string) (string, error) {
	name := override
	if name == "" {
		name = id
	}
	if name == "" || name == "N/A" {
		return "", ErrNoID
	}
	if err := output.CheckName(name); err != nil {
		return "", err
	}
	return name + "_clean.json", nil
}
