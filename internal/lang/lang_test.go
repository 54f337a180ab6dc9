package lang

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse covers labels, short aliases, BCP-47 tags and unsupported input.
func TestParse(t *testing.T) {
	testCases := []struct {
		input    string
		expected Language
		wantErr  bool
	}{
		{"English", English, false},
		{"Francais", French, false},
		{"Français", French, false},
		{"en", English, false},
		{"fr", French, false},
		{"en-GB", English, false},
		{"fr-CA", French, false},
		{"de", Unknown, true},
		{"klingon!", Unknown, true},
		{"", Unknown, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			l, err := Parse(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, l)
		})
	}
}

// TestForUnsupported checks that missing tables surface a distinct error.
func TestForUnsupported(t *testing.T) {
	_, err := For(Language("Deutsch"))
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

// TestResourcesLoaded spot-checks the embedded tables.
func TestResourcesLoaded(t *testing.T) {
	en, err := For(English)
	require.NoError(t, err)
	fr, err := For(French)
	require.NoError(t, err)

	assert.Equal(t, "[break]", en.SilentMarker)
	assert.Equal(t, "[pause]", fr.SilentMarker)
	assert.Contains(t, en.Deictic.Spatial, "those")
	assert.Contains(t, fr.Deictic.Temporal, "en")
	assert.Contains(t, en.FilledPauses, "uh")
	assert.NotContains(t, en.FilledPauses, "euh")
	assert.Contains(t, fr.FilledPauses, "euh")
	assert.NotEmpty(t, en.Fragments)
	assert.Nil(t, fr.Fragments)
	assert.Nil(t, fr.FragmentPairs)
	assert.NotEmpty(t, Version())

	cookie, ok := en.ICU("")
	require.True(t, ok)
	assert.Len(t, cookie, 25)
	assert.Equal(t, "mother", cookie[0].Concept)

	picnic, ok := en.ICU("picnic")
	require.True(t, ok)
	assert.Equal(t, "father", picnic[0].Concept)

	_, ok = fr.ICU("picnic")
	assert.False(t, ok)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Nom", POSLabel("NOUN"))
	assert.Equal(t, "Nom propre", POSLabel("PROPN"))
	assert.Equal(t, "SPACE", POSLabel("SPACE"))
	assert.Len(t, POSLabels(), 18)

	require.Len(t, DependencyLabels(), 22)
	assert.Equal(t, Label{Tag: "nsubj", Label: "Sujet_nominal"}, DependencyLabels()[0])
	assert.Len(t, SubordinateLabels(), 5)
	assert.Equal(t, "csubj", SubordinateLabels()[0].Tag)

	assert.True(t, UCSFFilledPause("Well"))
	assert.False(t, UCSFFilledPause("euh"))
	assert.Equal(t, []string{"[pause]", "[break]"}, UCSFSilentMarkers())
}

// TestStopWords checks case-insensitive stop-word filtering.
func TestStopWords(t *testing.T) {
	en, err := For(English)
	require.NoError(t, err)
	assert.True(t, en.IsStopWord("The"))
	assert.False(t, en.IsStopWord("cookie"))
	assert.Equal(t, []string{"boy", "taking", "cookie"},
		en.RemoveStopWords([]string{"The", "boy", "is", "taking", "a", "cookie"}))
}

// TestDetect validates stop-word based language detection.
func TestDetect(t *testing.T) {
	testCases := []struct {
		name     string
		sentence string
		expected Language
	}{
		{"English", "The boy is on the stool and he is taking a cookie from the jar.", English},
		{"French", "La mère est dans la cuisine et elle lave la vaisselle avec de l'eau.", French},
		{"Too short", "cookie", Unknown},
		{"Empty", "", Unknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Detect(tc.sentence))
		})
	}
}

func TestStemTokens(t *testing.T) {
	stems, err := StemTokens([]string{"running", "cookies"}, English)
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "cooki"}, stems)

	_, err = StemTokens([]string{"x"}, Language("Deutsch"))
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestModelName(t *testing.T) {
	name, err := ModelName(French, TierTransformer)
	require.NoError(t, err)
	assert.Equal(t, "fr_dep_news_trf", name)

	tier, err := ParseTier(" LG ")
	require.NoError(t, err)
	assert.Equal(t, TierLarge, tier)

	_, err = ParseTier("xl")
	assert.Error(t, err)

	_, err = ModelName(Language("Deutsch"), TierSmall)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

// TestInDictionary checks the valid-word lexicon used for fragment detection.
func TestInDictionary(t *testing.T) {
	en, err := For(English)
	require.NoError(t, err)

	testCases := []struct {
		word     string
		expected bool
	}{
		{"cookie", true},
		{"Cookies", true},
		{"the", true},
		{"laun", false},
		{"zxqw", false},
	}
	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			ok, err := en.InDictionary(tc.word)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}

	lm, err := Lemmatizer(English)
	require.NoError(t, err)
	assert.Equal(t, "run", lm.Lemma("running"))

	_, err = Lemmatizer(Language("Deutsch"))
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}
