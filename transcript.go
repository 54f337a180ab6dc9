package lingua

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmsdko/lingua/internal/lang"
)

// Defaults fill the transcript fields an input file does not carry.
type Defaults struct {
	ID       string
	Language lang.Language
	Task     string
}

type transcriptFile struct {
	ID     string `json:"ID"`
	Langue string `json:"Langue"`
	Texte  string `json:"Texte"`
	Tache  string `json:"Tache"`
}

// ReadTranscript reads a .json transcript ({ID, Langue, Texte, Tache}) or a
// plain-text one. Plain-text lines are joined with single spaces. Missing
// fields come from d; a transcript with neither a language nor a default
// language is detected from its stop words.
func ReadTranscript(path string, d Defaults) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("read transcript: %w", err)
	}
	base := filepath.Base(path)
	t := Transcript{
		ID:       d.ID,
		Language: d.Language,
		Task:     d.Task,
		Name:     strings.TrimSuffix(base, filepath.Ext(base)),
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var f transcriptFile
		if err := json.Unmarshal(data, &f); err != nil {
			return Transcript{}, fmt.Errorf("decode transcript %s: %w", base, err)
		}
		if f.ID != "" {
			t.ID = f.ID
		}
		if f.Langue != "" {
			l, err := lang.Parse(f.Langue)
			if err != nil {
				return Transcript{}, fmt.Errorf("transcript %s: %w", base, err)
			}
			t.Language = l
		}
		if f.Tache != "" {
			t.Task = f.Tache
		}
		t.Text = f.Texte
	} else {
		var lines []string
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		t.Text = strings.Join(lines, " ")
	}

	if t.ID == "" {
		t.ID = t.Name
	}
	if t.Language == lang.Unknown {
		t.Language = lang.Detect(t.Text)
		if t.Language == lang.Unknown {
			return Transcript{}, fmt.Errorf("transcript %s: %w: no language given and none detected", base, lang.ErrUnsupportedLanguage)
		}
	}
	return t, nil
}
