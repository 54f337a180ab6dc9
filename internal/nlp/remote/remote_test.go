package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const annotateResponse = `{
  "tokens": [
    {"text": "boy", "lemma": "boy", "pos": "NOUN", "tag": "NN", "dep": "nsubj", "head": 1, "is_alpha": true},
    {"text": "falls", "lemma": "fall", "pos": "VERB", "tag": "VBZ", "dep": "ROOT", "head": 1, "n_lefts": 1, "is_alpha": true}
  ],
  "sentences": [{"start": 0, "end": 2}],
  "noun_chunks": [{"start": 0, "end": 1}]
}`

// TestAnnotate checks the request body and the decoded document.
func TestAnnotate(t *testing.T) {
	var got annotateReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/annotate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(annotateResponse))
	}))
	defer srv.Close()

	c := New(Options{URL: srv.URL + "/", Tier: lang.TierLarge})
	doc, err := c.Annotate(context.Background(), "boy falls", lang.English)
	require.NoError(t, err)

	assert.Equal(t, "boy falls", got.Text)
	assert.Equal(t, "en_core_web_lg", got.Model)
	assert.Equal(t, "en_core_web_lg", doc.Model)
	require.Len(t, doc.Tokens, 2)
	assert.Equal(t, "fall", doc.Tokens[1].Lemma)
	assert.Equal(t, 1, doc.Tokens[1].NLefts)
	assert.Equal(t, []int{0}, doc.Children(1))
	assert.Len(t, doc.NounChunks, 1)
}

func TestAnnotateErrors(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"Server error", http.StatusInternalServerError, "model not loaded"},
		{"Malformed body", http.StatusOK, "{"},
		{"Head out of range", http.StatusOK, `{"tokens":[{"text":"a","head":4}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(Options{URL: srv.URL}).Annotate(context.Background(), "a", lang.English)
			require.Error(t, err)
			assert.ErrorIs(t, err, nlp.ErrProvider)
		})
	}
}

func TestAnnotateUnsupportedLanguage(t *testing.T) {
	_, err := New(Options{URL: "http://unused"}).Annotate(context.Background(), "hallo", lang.Language("Deutsch"))
	assert.ErrorIs(t, err, lang.ErrUnsupportedLanguage)
}
