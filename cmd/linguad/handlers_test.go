package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmsdko/lingua"
	"github.com/cmsdko/lingua/internal/nlp/nlptest"
	"github.com/cmsdko/lingua/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	stub := nlptest.New()
	ex, err := lingua.New(lingua.Options{Provider: stub})
	require.NoError(t, err)
	return newAPIHandler(ex, stub, logger.Nop()).router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

// TestExtractEndpoint checks the record body and the error statuses.
func TestExtractEndpoint(t *testing.T) {
	h := newTestRouter(t)

	testCases := []struct {
		name string
		body string
		code int
	}{
		{"Valid", `{"id": "P01", "language": "en", "text": "the boy is taking cookies."}`, http.StatusOK},
		{"Detected language", `{"id": "P01", "text": "the boy is on the stool and he falls."}`, http.StatusOK},
		{"Malformed body", `{"id": `, http.StatusBadRequest},
		{"Unknown language", `{"id": "P01", "language": "de", "text": "hallo"}`, http.StatusBadRequest},
		{"Empty text", `{"id": "P01", "language": "en", "text": " "}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/extract", tc.body)
			require.Equal(t, tc.code, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var out map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			if tc.code == http.StatusOK {
				assert.Equal(t, "P01", out["participant_id"])
				assert.Equal(t, "English", out["Langue"])
				assert.Contains(t, out, "Brunet_W_indice")
			} else {
				assert.NotEmpty(t, out["error"])
				assert.Equal(t, rec.Header().Get(requestIDHeader), out["request_id"])
			}
		})
	}
}

func TestExtractMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/v1/extract", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestPreprocessEndpoint(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodPost, "/v1/preprocess", `{"id": "P01", "language": "English", "text": "The boy is taking cookies."}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "P01", out["ID"])
	assert.Equal(t, []any{"boy", "take", "cookie"}, out["Lemmes"])

	rec = do(t, h, http.MethodPost, "/v1/preprocess", `{"language": "English", "text": "hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMergeEndpoint(t *testing.T) {
	h := newTestRouter(t)
	body := `{"participant": {"ID": "P01", "Langue": "English"},
		"test": {"interventions": [{"contenu": "the boy"}, {"contenu": "falls"}]}}`
	rec := do(t, h, http.MethodPost, "/v1/merge", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"ID": "P01", "Langue": "English", "Texte": "the boy falls"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/merge", `{"participant": {"ID": "N/A"}, "test": {"interventions": []}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
