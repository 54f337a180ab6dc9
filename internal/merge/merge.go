// Package merge joins the interventions of a multi-turn session into one
// transcript.
package merge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cmsdko/lingua/internal/output"
)

// ErrNoID is returned when neither the session nor the caller names the output.
var ErrNoID = errors.New("participant ID missing; specify an output name")

type Participant struct {
	ID     string `json:"ID"`
	Langue string `json:"Langue"`
}

type Intervention struct {
	Contenu string `json:"contenu"`
}

// Session is a transcribed test session with one entry per speaking turn.
type Session struct {
	Participant Participant `json:"participant"`
	Test        struct {
		Interventions []Intervention `json:"interventions"`
	} `json:"test"`
}

// Transcript is the merged output, the input format of extraction.
type Transcript struct {
	ID     string `json:"ID"`
	Langue string `json:"Langue"`
	Texte  string `json:"Texte"`
}

// Decode reads a session document.
func Decode(r io.Reader) (*Session, error) {
	var s Session
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func ReadFile(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Merge joins the intervention contents with single spaces.
func Merge(s *Session) Transcript {
	parts := make([]string, len(s.Test.Interventions))
	for i, in := range s.Test.Interventions {
		parts[i] = in.Contenu
	}
	return Transcript{
		ID:     s.Participant.ID,
		Langue: s.Participant.Langue,
		Texte:  strings.Join(parts, " "),
	}
}

// OutputName returns <name>.json, where name is override when set and the
// participant ID otherwise.
func OutputName(t Transcript, override string) (string, error) {
	name := override
	if name == "" {
		name = t.ID
	}
	if name == "" || name == "N/A" {
		return "", ErrNoID
	}
	if err := output.CheckName(name); err != nil {
		return "", err
	}
	return name + ".json", nil
}
