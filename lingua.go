// Package lingua extracts linguistic measures from clinical speech
// transcripts. One call to Extract annotates a transcript once and runs every
// lexical, semantic, syntactic, pragmatic, fluency and speech-production
// measure against that annotation, producing a single flat record.
package lingua

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmsdko/lingua/internal/classify"
	"github.com/cmsdko/lingua/internal/features"
	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/metric"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/cmsdko/lingua/internal/norms"
	"github.com/cmsdko/lingua/internal/text"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrEmptyTranscript is returned for a transcript with no text.
var ErrEmptyTranscript = errors.New("empty transcript")

// MATTRWindows are the window sizes reported as MATTR_<n>.
var MATTRWindows = []int{10, 25, 40}

// Transcript is one speech sample.
type Transcript struct {
	ID       string
	Language lang.Language
	Text     string
	// Task names the picture-description stimulus. Empty means cookie_theft.
	Task string
	// Name is the input file base name, used for output file names. It
	// defaults to ID.
	Name string
}

func (t Transcript) name() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// TranscriptError names the transcript and the measure that failed.
type TranscriptError struct {
	ID      string
	Feature string
	Err     error
}

func (e *TranscriptError) Error() string {
	return fmt.Sprintf("transcript %q: %s: %v", e.ID, e.Feature, e.Err)
}

func (e *TranscriptError) Unwrap() error { return e.Err }

// Options configures an Extractor.
type Options struct {
	// Provider annotates transcripts. This field is required.
	Provider nlp.Provider

	// Norms holds the psycholinguistic norm tables. Measures without a
	// loaded table are reported as N/A.
	Norms *norms.Set

	// Sentiment and Emotion label the whole transcript. A nil or disabled
	// client reports N/A.
	Sentiment *classify.Client
	Emotion   *classify.Client
}

// Extractor computes feature records. It is safe for concurrent use when its
// provider is.
type Extractor struct {
	opts   Options
	tracer trace.Tracer
}

func New(opts Options) (*Extractor, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return &Extractor{opts: opts, tracer: otel.Tracer("lingua")}, nil
}

func validateOptions(opts Options) error {
	if opts.Provider == nil {
		return errors.New("Provider is required")
	}
	return nil
}

// Extract computes every measure for t. It returns either a complete record
// or a *TranscriptError, never a partial record.
func (e *Extractor) Extract(ctx context.Context, t Transcript) (*metric.Record, error) {
	ctx, span := e.tracer.Start(ctx, "lingua.extract")
	defer span.End()
	span.SetAttributes(
		attribute.String("transcript.id", t.ID),
		attribute.String("transcript.language", string(t.Language)),
	)

	rec, err := e.extract(ctx, t)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("record.keys", rec.Len()))
	return rec, nil
}

func (e *Extractor) extract(ctx context.Context, t Transcript) (*metric.Record, error) {
	fail := func(feature string, err error) error {
		return &TranscriptError{ID: t.ID, Feature: feature, Err: err}
	}

	if strings.TrimSpace(t.Text) == "" {
		return nil, fail("input", ErrEmptyTranscript)
	}
	res, err := lang.For(t.Language)
	if err != nil {
		return nil, fail("language", err)
	}

	// UCSF markers are counted on the raw text, then hidden from every
	// other measure.
	normalized := text.Normalize(t.Text)
	disfluencies := text.CountDisfluencies(normalized)
	raw := text.StripDisfluencies(normalized)
	if strings.TrimSpace(raw) == "" {
		return nil, fail("input", ErrEmptyTranscript)
	}

	doc, err := e.opts.Provider.Annotate(ctx, raw, t.Language)
	if err != nil {
		return nil, fail("nlp", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fail("nlp", err)
	}
	in := features.NewInput(raw, res, doc)

	sentiment, err := e.opts.Sentiment.Label(ctx, raw)
	if err != nil {
		return nil, fail("sentiment", err)
	}
	emotion, err := e.opts.Emotion.Label(ctx, raw)
	if err != nil {
		return nil, fail("emotion", err)
	}

	fragments := metric.Unsupported()
	switch n, err := features.Fragments(in); {
	case err == nil:
		fragments = metric.Int(n)
	case !errors.Is(err, lang.ErrUnsupportedLanguage):
		return nil, fail("fragments", err)
	}

	b := newBuilder()
	e.production(b, t, in, doc, fragments)
	e.lexical(b, in)
	icu := features.ICU(in, t.Task)
	e.semantic(b, in, icu)
	e.syntactic(b, in)
	e.pragmatic(b, in, sentiment, emotion)
	e.appendices(b, in, disfluencies, icu)

	if b.err != nil {
		return nil, fail("record", b.err)
	}
	return b.rec, nil
}

// production adds identification, speech-production and fluency measures.
func (e *Extractor) production(b *builder, t Transcript, in *features.Input, doc *nlp.Doc, fragments metric.Value) {
	lemmas := features.Lemmas(doc)
	distinctLemmas, repeated := features.Repetitions(lemmas)

	b.text("filename", t.name())
	b.text("participant_id", t.ID)
	b.text("Langue", string(t.Language))
	b.text("SpaCy_Model", doc.Model)
	b.int("Nombre_de_lemmes", features.LemmaCount(lemmas))
	b.set("Nombre_de_fragments", fragments)
	b.set("Nombre_de_fragments_autre_methode", features.FragmentsFromList(in))
	b.set("Fragments_en_contexte", features.ContextFragments(in))
	b.int("Nombre_de_mots", in.WordCount())
	b.int("Nombre_de_pauses_silencieuses", features.SilentPauses(in))
	b.int("Nombre_de_pauses_remplies", features.FilledPauses(in))
	b.int("Nombre_de_lemmes_differents", distinctLemmas)
	b.int("Nombre_de_repetitions_mots", repeated)
}

func (e *Extractor) lexical(b *builder, in *features.Input) {
	doc := in.Doc
	words := in.WordCount()
	open, closed := features.OpenClosed(doc)
	gerunds := features.Gerunds(in)

	b.int("Mots_de_classe_ouverte", open)
	b.int("Mots_de_classe_fermee", closed)
	b.set("Nombre_de_gerondifs", gerunds)
	b.fields(features.Ratios(features.RatioInputs{
		Verbs:     features.CountPOS(doc, "VERB"),
		Nouns:     features.CountPOS(doc, "NOUN"),
		Pronouns:  features.CountPOS(doc, "PRON"),
		Inflected: features.InflectedVerbs(doc),
		Open:      open,
		Closed:    closed,
		Gerunds:   gerunds,
		Words:     words,
	}))

	deictic := features.Deictic(in)
	b.int("Nombre_de_pronoms_deictiques", deictic.Total())
	b.int("Nombre_de_pronoms_deictiques_spatiaux", deictic.Spatial)
	b.int("Nombre_de_pronoms_deictiques_personnels", deictic.Personal)
	b.int("Nombre_de_pronoms_deictiques_temporels", deictic.Temporal)

	indefinite, ratio := features.Indefinite(in)
	b.int("Nombre_de_termes_indefinis", indefinite)
	b.float("Ratio_termes_indefinis", ratio)
	for _, w := range MATTRWindows {
		b.float(fmt.Sprintf("MATTR_%d", w), features.MATTR(doc, w))
	}

	unique := features.UniqueWords(in)
	lemmas := features.Lemmas(doc)
	distinctLemmas, _ := features.Repetitions(lemmas)
	b.int("Nombre_de_mots_uniques", unique)
	b.set("Statistique_R_de_Honore", features.Honore(words, distinctLemmas, features.LemmaHapaxes(lemmas)))
	b.fields(features.Norms(in, e.opts.Norms))
	b.set("Brunet_W_indice", features.Brunet(words, unique))
}

func (e *Extractor) semantic(b *builder, in *features.Input, icu features.ICUResult) {
	b.set("Nombre_ICU_TRUE", icu.TrueCount())
	b.set("Efficacite_ICU", icu.Efficiency(in.WordCount()))
}

func (e *Extractor) syntactic(b *builder, in *features.Input) {
	doc := in.Doc
	mean, longest := features.DependencyLengths(doc)
	b.float("Longueur_moyenne_des_dependances", mean)
	b.int("Longueur_maximale_des_dependances", longest)

	children := features.Children(in)
	b.float("Moyenne_enfants_gauches", children.MeanLeft)
	b.float("Moyenne_enfants_droits", children.MeanRight)
	b.int("Total_enfants_gauches", children.Left)
	b.int("Total_enfants_droits", children.Right)

	inflected := features.InflectedVerbs(doc)
	b.int("Nombre_de_verbes_inflexion", inflected)
	b.set("Verbe_inflection_relatif", metric.Frequency(inflected, in.WordCount()))
	b.fields(features.Subordinate(in))

	b.float("Longueur_moyenne_phrases", features.MeanSentenceLength(doc))
	st := features.Sentences(in)
	b.count("Nombre_de_phrases_incompletes_absolu", "Nombre_de_phrases_incompletes_relatif", st.Incomplete)
	b.count("Nombre_de_phrases_prepositionnelles_absolu", "Nombre_de_phrases_prepositionnelles_relatif", st.Prepositional)
	b.count("Nombre_de_phrases_verbales_absolu", "Nombre_de_phrases_verbales_relatif", st.Verbal)

	np := features.NounChunks(in)
	b.int("Nombre_absolu_phrases_nominales", np.Count)
	b.float("Longueur_moyenne_phrases_nominales", np.MeanLength)
	b.set("Frequence_relative_phrases_nominales", np.Relative)

	b.fields(features.Tenses(in))
	b.float("Nbre_clauses_par_phrase", features.ClausesPerSentence(doc))
	b.float("Proportion_noms_determinants", features.NounsWithDeterminers(doc))
	b.count("Nombre_de_phrases_coordonnees", "Frequence_relative_phrases_coordonnees", features.Coordinated(in))
}

func (e *Extractor) pragmatic(b *builder, in *features.Input, sentiment, emotion metric.Value) {
	b.float("Coherence_locale", features.LocalCoherence(in.Doc))
	b.set("Sentiment-valence", sentiment)
	b.set("Emotion", emotion)
	b.count("Nombre_de_mots_incertitude", "Frequence_relative_mots_incertitude", features.Uncertainty(in))
	b.count("Nombre_de_mots_difficulte_acces_lexical", "Frequence_relative_mots_difficulte_acces_lexical", features.LexicalAccessDifficulty(in))
	b.count("Nombre_de_mots_expression_formulaiques", "Frequence_relative_mots_expression_formulaiques", features.Formulaic(in))
	b.count("Nombre_de_mots_modalisations", "Frequence_relative_mots_modalisations", features.Modal(in))
	b.count("Nombre_de_mots_de_remplissage", "Frequence_relative_mots_de_remplissage", features.Fillers(in))
}

// appendices adds the keyed families that follow the fixed block: UCSF
// disfluencies, the POS distribution, idea density, one flag per ICU and the
// dependency histogram.
func (e *Extractor) appendices(b *builder, in *features.Input, d text.DisfluencyCounts, icu features.ICUResult) {
	b.int("UCSF_disfluency_single_repetition", d.SingleRepetition)
	b.int("UCSF_disfluency_multiple_repetitions", d.MultipleRepetitions)
	b.int("UCSF_disfluency_repeated_phrase", d.RepeatedPhrase)
	b.int("UCSF_disfluency_restart_rephrase", d.RestartRephrase)
	b.int("UCSF_disfluency_partial_word_false_start", d.PartialWord)
	b.int("UCSF_disfluency_spoonerism", d.Spoonerism)
	filled, silent := features.UCSFPauses(in)
	b.int("UCSF_disfluency_filled_pauses", filled)
	b.int("UCSF_disfluency_silent_pauses", silent)

	for _, c := range features.POSDistribution(in.Doc) {
		b.int(c.Label+"_count", c.Count)
		b.float(c.Label+"_percentage", c.Percentage)
	}
	b.fields(features.IdeaDensity(in.Doc, features.IdeaDensityWindows))
	b.fields(icu.Fields())
	b.fields(features.Dependencies(in))
}
