package lang

import "github.com/kljensen/snowball"

// snowballName maps a language to its Snowball algorithm.
var snowballName = map[Language]string{
	English: "english",
	French:  "french",
}

// StemTokens applies the Snowball stemmer of l to every token. Tokens the
// stemmer rejects are kept unchanged.
func StemTokens(tokens []string, l Language) ([]string, error) {
	algo, ok := snowballName[l]
	if !ok {
		return nil, ErrUnsupportedLanguage
	}

	stemmed := make([]string, len(tokens))
	for i, token := range tokens {
		s, err := snowball.Stem(token, algo, true)
		if err != nil || s == "" {
			stemmed[i] = token
			continue
		}
		stemmed[i] = s
	}
	return stemmed, nil
}
