package lang

import (
	"fmt"
	"strings"
)

// Tier selects an annotation model size, from fastest to most accurate.
type Tier string

const (
	TierSmall       Tier = "sm"
	TierMedium      Tier = "md"
	TierLarge       Tier = "lg"
	TierTransformer Tier = "trf"
)

var modelNames = map[Language]map[Tier]string{
	English: {
		TierSmall:       "en_core_web_sm",
		TierMedium:      "en_core_web_md",
		TierLarge:       "en_core_web_lg",
		TierTransformer: "en_core_web_trf",
	},
	French: {
		TierSmall:       "fr_core_news_sm",
		TierMedium:      "fr_core_news_md",
		TierLarge:       "fr_core_news_lg",
		TierTransformer: "fr_dep_news_trf",
	},
}

// ParseTier validates a model tier name.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TierSmall, TierMedium, TierLarge, TierTransformer:
		return t, nil
	}
	return "", fmt.Errorf("invalid model tier %q (valid: sm, md, lg, trf)", s)
}

// ModelName returns the annotation model used for l at tier t.
func ModelName(l Language, t Tier) (string, error) {
	byTier, ok := modelNames[l]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(l))
	}
	name, ok := byTier[t]
	if !ok {
		return "", fmt.Errorf("invalid model tier %q (valid: sm, md, lg, trf)", string(t))
	}
	return name, nil
}
