package lang

import (
	"fmt"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/aaaton/golem/v4/dicts/fr"
)

// Dictionaries are large, so each one is decoded on first use only.
type lemmaDict struct {
	once sync.Once
	pack func() golem.LanguagePack
	lm   *golem.Lemmatizer
	err  error
}

var lemmaDicts = map[Language]*lemmaDict{
	English: {pack: func() golem.LanguagePack { return en.New() }},
	French:  {pack: func() golem.LanguagePack { return fr.New() }},
}

// Lemmatizer returns the shared dictionary lemmatizer for l. It is safe for
// concurrent use once returned.
func Lemmatizer(l Language) (*golem.Lemmatizer, error) {
	d, ok := lemmaDicts[l]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(l))
	}
	d.once.Do(func() {
		d.lm, d.err = golem.New(d.pack())
		if d.err != nil {
			d.err = fmt.Errorf("load %s lemma dictionary: %w", l, d.err)
		}
	})
	return d.lm, d.err
}

// InDictionary reports whether word is a known form of l, either a stop word
// or an entry of the lemma dictionary.
func (r *Resources) InDictionary(word string) (bool, error) {
	lower := r.Language.Lower(word)
	if _, ok := r.Stopwords[lower]; ok {
		return true, nil
	}
	lm, err := Lemmatizer(r.Language)
	if err != nil {
		return false, err
	}
	return lm.InDict(lower), nil
}
