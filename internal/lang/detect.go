package lang

// ConfidenceThreshold is the number of stop-word hits a language needs
// before Detect trusts it.
const ConfidenceThreshold = 2

// Detect guesses the language of a transcript by counting stop-word hits per
// supported language. It returns Unknown when no language reaches
// ConfidenceThreshold or when the best scores tie.
func Detect(s string) Language {
	tokens := wordsOf(s)
	if len(tokens) == 0 {
		return Unknown
	}

	scores := make(map[Language]int, len(resourcesByLang))
	for _, token := range tokens {
		for l, res := range resourcesByLang {
			if _, ok := res.Stopwords[token]; ok {
				scores[l]++
			}
		}
	}

	best := Unknown
	maxScore := ConfidenceThreshold - 1
	isTie := false
	for l, score := range scores {
		if score > maxScore {
			maxScore = score
			best = l
			isTie = false
		} else if score == maxScore && best != Unknown {
			isTie = true
		}
	}
	if isTie {
		return Unknown
	}
	return best
}
