// Package app wires a loaded configuration into the extraction pipeline
// shared by the lingua binaries.
package app

import (
	"fmt"

	"github.com/cmsdko/lingua"
	"github.com/cmsdko/lingua/internal/classify"
	"github.com/cmsdko/lingua/internal/config"
	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/nlp"
	"github.com/cmsdko/lingua/internal/nlp/offline"
	"github.com/cmsdko/lingua/internal/nlp/remote"
	"github.com/cmsdko/lingua/internal/norms"
)

// App holds the long-lived components. They are safe for concurrent use.
type App struct {
	Config    *config.Config
	Provider  nlp.Provider
	Extractor *lingua.Extractor
}

// New builds the provider, loads the norm tables and creates the
// classifier clients. A norm table that fails to load is an error.
func New(cfg *config.Config) (*App, error) {
	provider, err := NewProvider(cfg.NLP)
	if err != nil {
		return nil, err
	}

	var set *norms.Set
	if sources := cfg.NormSources(); sources != nil {
		if set, err = norms.LoadSet(sources); err != nil {
			return nil, err
		}
	}

	classifier := func(kind classify.Kind, url string) *classify.Client {
		return classify.New(kind, classify.Options{
			URL:           url,
			Timeout:       cfg.Classifiers.Timeout,
			RatePerSecond: cfg.Classifiers.RatePerSecond,
			CacheSize:     cfg.Classifiers.CacheSize,
		})
	}
	ex, err := lingua.New(lingua.Options{
		Provider:  provider,
		Norms:     set,
		Sentiment: classifier(classify.Sentiment, cfg.Classifiers.SentimentURL),
		Emotion:   classifier(classify.Emotion, cfg.Classifiers.EmotionURL),
	})
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Provider: provider, Extractor: ex}, nil
}

// NewProvider returns the annotation provider selected by c.
func NewProvider(c config.NLP) (nlp.Provider, error) {
	switch c.Provider {
	case config.ProviderRemote:
		tier, err := lang.ParseTier(c.Tier)
		if err != nil {
			return nil, err
		}
		return remote.New(remote.Options{
			URL:           c.URL,
			Tier:          tier,
			Timeout:       c.Timeout,
			RatePerSecond: c.RatePerSecond,
			Burst:         c.Burst,
		}), nil
	case config.ProviderOffline:
		return offline.New(), nil
	}
	return nil, fmt.Errorf("%w: unknown nlp.provider %q", config.ErrInvalid, c.Provider)
}
