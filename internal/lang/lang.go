package lang

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cmsdko/lingua/internal/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// --- DATA STRUCTURES ---

// Language is one of the supported transcript languages. The values are the
// labels written to the "Langue" field of input and output records.
type Language string

const (
	English Language = "English"
	French  Language = "Francais"

	Unknown Language = ""
)

// ErrUnsupportedLanguage is returned by every operation that has no tables
// for the requested language. It is distinct from a computed zero.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Label maps a tag produced by the annotator to the label used in output keys.
type Label struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// Concept is one Information Content Unit and the surface variants that reveal it.
type Concept struct {
	Concept  string   `json:"concept"`
	Variants []string `json:"variants"`
}

type deicticData struct {
	Spatial  []string `json:"spatial"`
	Personal []string `json:"personal"`
	Temporal []string `json:"temporal"`
}

type languageData struct {
	Stopwords       []string             `json:"stopwords"`
	Deictic         deicticData          `json:"deictic"`
	IndefiniteTerms []string             `json:"indefinite_terms"`
	Coordination    []string             `json:"coordination"`
	Uncertainty     []string             `json:"uncertainty"`
	Difficulty      []string             `json:"difficulty"`
	Formulaic       []string             `json:"formulaic"`
	Modal           []string             `json:"modal"`
	Fillers         []string             `json:"fillers"`
	FilledPauses    []string             `json:"filled_pauses"`
	SilentMarker    string               `json:"silent_marker"`
	Fragments       []string             `json:"fragments"`
	FragmentPairs   [][2]string          `json:"fragment_pairs"`
	ICU             map[string][]Concept `json:"icu"`
}

type lexiconData struct {
	Version           string  `json:"version"`
	POSLabels         []Label `json:"pos_labels"`
	DependencyLabels  []Label `json:"dependency_labels"`
	SubordinateLabels []Label `json:"subordinate_labels"`
	UCSF              struct {
		FilledPauses  []string `json:"filled_pauses"`
		SilentMarkers []string `json:"silent_markers"`
	} `json:"ucsf"`
	Languages map[Language]languageData `json:"languages"`
}

// Deictic groups deictic pronouns by reference type.
type Deictic struct {
	Spatial  map[string]struct{}
	Personal map[string]struct{}
	Temporal map[string]struct{}
}

// Resources is the immutable set of lexical tables for one language.
type Resources struct {
	Language        Language
	Stopwords       map[string]struct{}
	Deictic         Deictic
	IndefiniteTerms map[string]struct{}
	Coordination    map[string]struct{}
	Uncertainty     map[string]struct{}
	Difficulty      map[string]struct{}
	Formulaic       []string
	Modal           []string
	Fillers         []string
	FilledPauses    map[string]struct{}
	SilentMarker    string
	// Fragments is nil when the language has no fragment list.
	Fragments []string
	// FragmentPairs is nil when the language has no target pairs.
	FragmentPairs [][2]string
	icu           map[string][]Concept
}

// --- EMBEDDED DATA ---

//go:embed data/lexicon.json
var lexiconJSON []byte

// --- CONSTANTS AND GLOBAL VARIABLES ---

// DefaultTask is the picture-description stimulus assumed when a transcript
// does not name one.
const DefaultTask = "cookie_theft"

var (
	lexiconVersion    string
	posLabels         []Label
	posLabelByTag     map[string]string
	dependencyLabels  []Label
	subordinateLabels []Label
	ucsfFilledPauses  map[string]struct{}
	ucsfSilentMarkers []string
	resourcesByLang   map[Language]*Resources
)

// --- INITIALIZATION (runs once at startup) ---

func init() {
	var raw lexiconData
	if err := json.Unmarshal(lexiconJSON, &raw); err != nil {
		log.Fatalf("FATAL: Failed to parse embedded lexicon.json: %v", err)
	}
	if len(raw.Languages) == 0 {
		log.Fatalf("FATAL: embedded lexicon.json declares no languages")
	}

	lexiconVersion = raw.Version
	posLabels = raw.POSLabels
	posLabelByTag = labelIndex(raw.POSLabels)
	dependencyLabels = raw.DependencyLabels
	subordinateLabels = raw.SubordinateLabels
	ucsfFilledPauses = toSet(raw.UCSF.FilledPauses)
	ucsfSilentMarkers = raw.UCSF.SilentMarkers

	resourcesByLang = make(map[Language]*Resources, len(raw.Languages))
	for l, data := range raw.Languages {
		resourcesByLang[l] = &Resources{
			Language:  l,
			Stopwords: toSet(data.Stopwords),
			Deictic: Deictic{
				Spatial:  toSet(data.Deictic.Spatial),
				Personal: toSet(data.Deictic.Personal),
				Temporal: toSet(data.Deictic.Temporal),
			},
			IndefiniteTerms: toSet(data.IndefiniteTerms),
			Coordination:    toSet(data.Coordination),
			Uncertainty:     toSet(data.Uncertainty),
			Difficulty:      toSet(data.Difficulty),
			Formulaic:       data.Formulaic,
			Modal:           data.Modal,
			Fillers:         data.Fillers,
			FilledPauses:    toSet(data.FilledPauses),
			SilentMarker:    data.SilentMarker,
			Fragments:       data.Fragments,
			FragmentPairs:   data.FragmentPairs,
			icu:             data.ICU,
		}
	}
}

// --- CORE FUNCTIONS ---

// Parse resolves a language label, a short alias ("en", "fr") or any BCP-47
// tag whose base language is supported ("en-GB", "fr-CA").
func Parse(s string) (Language, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "english", "anglais":
		return English, nil
	case "francais", "français", "french":
		return French, nil
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, nil
	case "fr":
		return French, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// For returns the lexical tables of l.
func For(l Language) (*Resources, error) {
	res, ok := resourcesByLang[l]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(l))
	}
	return res, nil
}

// Tag returns the BCP-47 tag of l.
func (l Language) Tag() language.Tag {
	switch l {
	case English:
		return language.English
	case French:
		return language.French
	}
	return language.Und
}

// Lower lowercases s with the casing rules of l.
func (l Language) Lower(s string) string {
	return cases.Lower(l.Tag()).String(s)
}

// ICU returns the concept dictionary for a picture-description task.
// The second result is false when the language has no dictionary for task.
func (r *Resources) ICU(task string) ([]Concept, bool) {
	if task == "" {
		task = DefaultTask
	}
	concepts, ok := r.icu[task]
	return concepts, ok
}

// IsStopWord reports whether the lowercased word is a stop word.
func (r *Resources) IsStopWord(word string) bool {
	_, ok := r.Stopwords[r.Language.Lower(word)]
	return ok
}

// RemoveStopWords drops stop words from tokens.
func (r *Resources) RemoveStopWords(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !r.IsStopWord(token) {
			result = append(result, token)
		}
	}
	return result
}

// Version identifies the embedded lexicon revision.
func Version() string { return lexiconVersion }

// POSLabels returns the coarse part-of-speech tags in output order.
func POSLabels() []Label { return posLabels }

// POSLabel translates a coarse part-of-speech tag. Unknown tags pass through.
func POSLabel(tag string) string {
	if label, ok := posLabelByTag[tag]; ok {
		return label
	}
	return tag
}

// DependencyLabels returns the translated dependency relations in output order.
func DependencyLabels() []Label { return dependencyLabels }

// SubordinateLabels returns the subordinate-clause relations in output order.
func SubordinateLabels() []Label { return subordinateLabels }

// UCSFFilledPause reports whether the lowercased word is a filled pause under
// UCSF transcription conventions.
func UCSFFilledPause(word string) bool {
	_, ok := ucsfFilledPauses[strings.ToLower(word)]
	return ok
}

// UCSFSilentMarkers returns the silent pause markers recognized in UCSF transcripts.
func UCSFSilentMarkers() []string { return ucsfSilentMarkers }

// --- HELPER FUNCTIONS ---

func labelIndex(labels []Label) map[string]string {
	idx := make(map[string]string, len(labels))
	for _, l := range labels {
		idx[l.Tag] = l.Label
	}
	return idx
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// wordsOf is the tokenizer shared with language detection.
func wordsOf(s string) []string {
	return text.Tokenize(s)
}
