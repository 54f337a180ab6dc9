package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Bracketed markers", "the [pause] boy [break] falls", "the boy falls"},
		{"Punctuation stripped", "well, the boy; is (maybe) falling!", "well the boy is maybe falling"},
		{"Question marks kept", "is it a cookie?", "is it a cookie?"},
		{"Typographic apostrophe kept", "c’est la mère", "c’est la mère"},
		{"ASCII apostrophe stripped", "don't", "dont"},
		{"Stray period after space", "the boy . the girl", "the boy the girl"},
		{"Double stray period", "the boy .. then", "the boy. then"},
		{"Spaced stray periods", "the boy . . then", "the boy then"},
		{"Whitespace collapsed", "the   boy\t\tfalls", "the boyfalls"},
		{"Empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Clean(tc.input))
		})
	}
}

// TestCleanIdempotent verifies that cleaning an already cleaned text changes nothing.
func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"x  ..",
		"a . . . b",
		"[unfinished bracket and . dots ..",
		"The boy  [break] is, uh, reaching ... for the cookie jar .",
		"  leading and trailing  ",
		"euh la maman . . elle essuie ?? la vaisselle",
		"tabs\tand\nnewlines . .\n.",
		"Ça déborde ! l’eau coule.",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestWordsAndPredicates(t *testing.T) {
	assert.Equal(t, []string{"the", "boy,", "falls."}, Words("  the boy,\nfalls. "))
	assert.True(t, IsAlpha("cookie"))
	assert.True(t, IsAlpha("évier"))
	assert.False(t, IsAlpha("don't"))
	assert.False(t, IsAlpha(""))
	assert.True(t, IsPunct("..."))
	assert.False(t, IsPunct("a."))
}

func TestCountAll(t *testing.T) {
	assert.Equal(t, 3, CountAll("you know I mean you know", []string{"you know", "I mean"}))
	assert.Equal(t, 0, CountAll("anything", []string{""}))
}

func TestDisfluencies(t *testing.T) {
	raw := "the = boy @@ took & the # cookie % $"
	c := CountDisfluencies(raw)
	assert.Equal(t, DisfluencyCounts{
		SingleRepetition:    1,
		MultipleRepetitions: 2,
		RepeatedPhrase:      1,
		RestartRephrase:     1,
		PartialWord:         1,
		Spoonerism:          1,
	}, c)
	assert.Equal(t, "the  boy  took  the  cookie  ", StripDisfluencies(raw))
	assert.Equal(t, "plain", StripDisfluencies("plain"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"l’eau", "déborde", "c'est", "arc-en-ciel"},
		Tokenize("L’eau DÉBORDE! c'est (arc-en-ciel)."))
	assert.Empty(t, Tokenize(" ?! "))
}
