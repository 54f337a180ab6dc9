package lingua

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestReadTranscript covers both input forms and the fallbacks.
func TestReadTranscript(t *testing.T) {
	testCases := []struct {
		name     string
		file     string
		content  string
		defaults Defaults
		expected Transcript
	}{
		{
			name:     "JSON with alias",
			file:     "p01.json",
			content:  `{"ID": "P01", "Langue": "fr", "Texte": "le garçon tombe", "Tache": "cookie_theft"}`,
			expected: Transcript{ID: "P01", Language: lang.French, Text: "le garçon tombe", Task: "cookie_theft", Name: "p01"},
		},
		{
			name:     "JSON falls back to defaults",
			file:     "p02.json",
			content:  `{"Texte": "the boy falls"}`,
			defaults: Defaults{ID: "X", Language: lang.English, Task: "picnic"},
			expected: Transcript{ID: "X", Language: lang.English, Text: "the boy falls", Task: "picnic", Name: "p02"},
		},
		{
			name:     "Text lines joined",
			file:     "session 3.txt",
			content:  "the boy is on the stool\r\n\n  and he is taking a cookie  \n",
			defaults: Defaults{Language: lang.English},
			expected: Transcript{ID: "session 3", Language: lang.English, Text: "the boy is on the stool and he is taking a cookie", Name: "session 3"},
		},
		{
			name:     "Text language detected",
			file:     "p04.txt",
			content:  "la mère est dans la cuisine et elle lave la vaisselle",
			expected: Transcript{ID: "p04", Language: lang.French, Text: "la mère est dans la cuisine et elle lave la vaisselle", Name: "p04"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := ReadTranscript(writeFile(t, tc.file, tc.content), tc.defaults)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, tr)
		})
	}
}

func TestReadTranscriptErrors(t *testing.T) {
	_, err := ReadTranscript(filepath.Join(t.TempDir(), "missing.json"), Defaults{})
	assert.Error(t, err)

	_, err = ReadTranscript(writeFile(t, "bad.json", `{"Texte": `), Defaults{})
	assert.Error(t, err)

	_, err = ReadTranscript(writeFile(t, "de.json", `{"Langue": "Deutsch", "Texte": "hallo"}`), Defaults{})
	assert.ErrorIs(t, err, lang.ErrUnsupportedLanguage)

	_, err = ReadTranscript(writeFile(t, "short.txt", "cookie"), Defaults{})
	assert.ErrorIs(t, err, lang.ErrUnsupportedLanguage)
}
