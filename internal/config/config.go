// Package config loads the settings shared by the lingua binaries from a
// YAML file, with LINGUA_* environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmsdko/lingua/internal/lang"
	"github.com/cmsdko/lingua/internal/norms"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Provider kinds.
const (
	ProviderRemote  = "remote"
	ProviderOffline = "offline"
)

type Config struct {
	NLP         NLP         `yaml:"nlp"`
	Classifiers Classifiers `yaml:"classifiers"`
	Norms       Norms       `yaml:"norms"`
	Output      Output      `yaml:"output"`
	Batch       Batch       `yaml:"batch"`
	Server      Server      `yaml:"server"`
	Log         Log         `yaml:"log"`
}

// NLP selects and tunes the annotation provider.
type NLP struct {
	Provider      string        `yaml:"provider"`
	URL           string        `yaml:"url"`
	Tier          string        `yaml:"tier"`
	Timeout       time.Duration `yaml:"timeout"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	Burst         int           `yaml:"burst"`
}

// Classifiers locates the sentiment and emotion services. An empty URL
// disables the classifier.
type Classifiers struct {
	SentimentURL  string        `yaml:"sentiment_url"`
	EmotionURL    string        `yaml:"emotion_url"`
	Timeout       time.Duration `yaml:"timeout"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	CacheSize     int           `yaml:"cache_size"`
}

// Norms locates the norm tables. Dir supplies the distributed file layout;
// Tables overrides individual measures.
type Norms struct {
	Dir    string                         `yaml:"dir"`
	Tables map[norms.Measure]norms.Source `yaml:"tables"`
}

type Output struct {
	Dir   string `yaml:"dir"`
	Excel bool   `yaml:"excel"`
	CSV   bool   `yaml:"csv"`
}

type Batch struct {
	Workers int `yaml:"workers"`
}

type Server struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		NLP: NLP{
			Provider: ProviderOffline,
			Tier:     string(lang.TierSmall),
			Timeout:  2 * time.Minute,
			Burst:    1,
		},
		Classifiers: Classifiers{Timeout: time.Minute, CacheSize: 256},
		Output:      Output{Dir: "results"},
		Batch:       Batch{Workers: 4},
		Server:      Server{Addr: ":8080", AllowedOrigins: []string{"*"}},
		Log:         Log{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.NLP.Provider = getEnvString("LINGUA_NLP_PROVIDER", c.NLP.Provider)
	c.NLP.URL = getEnvString("LINGUA_NLP_URL", c.NLP.URL)
	c.NLP.Tier = getEnvString("LINGUA_NLP_TIER", c.NLP.Tier)
	c.NLP.Timeout = getEnvDuration("LINGUA_NLP_TIMEOUT", c.NLP.Timeout)
	c.NLP.RatePerSecond = getEnvFloat("LINGUA_NLP_RATE", c.NLP.RatePerSecond)
	c.Classifiers.SentimentURL = getEnvString("LINGUA_SENTIMENT_URL", c.Classifiers.SentimentURL)
	c.Classifiers.EmotionURL = getEnvString("LINGUA_EMOTION_URL", c.Classifiers.EmotionURL)
	c.Classifiers.CacheSize = getEnvInt("LINGUA_CLASSIFIER_CACHE", c.Classifiers.CacheSize)
	c.Norms.Dir = getEnvString("LINGUA_NORMS_DIR", c.Norms.Dir)
	c.Output.Dir = getEnvString("LINGUA_OUTPUT_DIR", c.Output.Dir)
	c.Output.Excel = getEnvBool("LINGUA_EXCEL", c.Output.Excel)
	c.Output.CSV = getEnvBool("LINGUA_CSV", c.Output.CSV)
	c.Batch.Workers = getEnvInt("LINGUA_WORKERS", c.Batch.Workers)
	c.Server.Addr = getEnvString("LINGUA_ADDR", c.Server.Addr)
	if origins := os.Getenv("LINGUA_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	c.Log.Level = getEnvString("LINGUA_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvString("LINGUA_LOG_FORMAT", c.Log.Format)
}

// Validate checks the values that the binaries cannot recover from.
func (c *Config) Validate() error {
	switch c.NLP.Provider {
	case ProviderRemote:
		if c.NLP.URL == "" {
			return fmt.Errorf("%w: nlp.url is required for the remote provider", ErrInvalid)
		}
	case ProviderOffline:
	default:
		return fmt.Errorf("%w: unknown nlp.provider %q (valid: remote, offline)", ErrInvalid, c.NLP.Provider)
	}
	if _, err := lang.ParseTier(c.NLP.Tier); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.NLP.RatePerSecond < 0 || c.Classifiers.RatePerSecond < 0 {
		return fmt.Errorf("%w: rate limits must not be negative", ErrInvalid)
	}
	if c.NLP.Burst < 0 {
		return fmt.Errorf("%w: nlp.burst must not be negative, got %d", ErrInvalid, c.NLP.Burst)
	}
	if c.Classifiers.CacheSize < 0 {
		return fmt.Errorf("%w: classifiers.cache_size must not be negative, got %d", ErrInvalid, c.Classifiers.CacheSize)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("%w: batch.workers must be at least 1, got %d", ErrInvalid, c.Batch.Workers)
	}
	for m := range c.Norms.Tables {
		if !knownMeasure(m) {
			return fmt.Errorf("%w: unknown norm table %q", ErrInvalid, m)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// NormSources resolves the norm tables: the distributed layout under Dir,
// then the explicit Tables entries. Nil when nothing is configured.
func (c *Config) NormSources() map[norms.Measure]norms.Source {
	if c.Norms.Dir == "" && len(c.Norms.Tables) == 0 {
		return nil
	}
	sources := make(map[norms.Measure]norms.Source)
	if c.Norms.Dir != "" {
		sources = norms.DefaultSources(c.Norms.Dir)
	}
	for m, src := range c.Norms.Tables {
		sources[m] = src
	}
	return sources
}

func knownMeasure(m norms.Measure) bool {
	for _, known := range norms.Measures {
		if m == known {
			return true
		}
	}
	return false
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if str := os.Getenv(key); str != "" {
		if val, err := strconv.Atoi(str); err == nil {
			return val
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if str := os.Getenv(key); str != "" {
		if val, err := strconv.ParseFloat(str, 64); err == nil {
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if str := os.Getenv(key); str != "" {
		if val, err := time.ParseDuration(str); err == nil {
			return val
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if str := os.Getenv(key); str != "" {
		return str == "true" || str == "1"
	}
	return defaultValue
}
