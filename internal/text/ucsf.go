package text

import "strings"

// UCSF transcription conventions mark disfluencies inline with single
// characters. They are counted on the raw transcript and then removed so
// that no other measure sees them.
const (
	MarkSingleRepetition    = '='
	MarkMultipleRepetitions = '@'
	MarkRepeatedPhrase      = '&'
	MarkRestartRephrase     = '#'
	MarkPartialWord         = '%'
	MarkSpoonerism          = '$'
)

const disfluencyMarks = "=@&#%$"

// DisfluencyCounts holds the number of each UCSF marker found in a transcript.
type DisfluencyCounts struct {
	SingleRepetition    int
	MultipleRepetitions int
	RepeatedPhrase      int
	RestartRephrase     int
	PartialWord         int
	Spoonerism          int
}

// CountDisfluencies counts UCSF markers in raw.
func CountDisfluencies(raw string) DisfluencyCounts {
	var c DisfluencyCounts
	for _, r := range raw {
		switch r {
		case MarkSingleRepetition:
			c.SingleRepetition++
		case MarkMultipleRepetitions:
			c.MultipleRepetitions++
		case MarkRepeatedPhrase:
			c.RepeatedPhrase++
		case MarkRestartRephrase:
			c.RestartRephrase++
		case MarkPartialWord:
			c.PartialWord++
		case MarkSpoonerism:
			c.Spoonerism++
		}
	}
	return c
}

var disfluencyStripper = strings.NewReplacer(
	"=", "", "@", "", "&", "", "#", "", "%", "", "$", "",
)

// StripDisfluencies removes every UCSF marker character from raw.
func StripDisfluencies(raw string) string {
	if !strings.ContainsAny(raw, disfluencyMarks) {
		return raw
	}
	return disfluencyStripper.Replace(raw)
}
