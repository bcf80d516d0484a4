package safety

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Risk categories. Weights live in config, not code, so offline eval can
// retune them without touching pipeline logic.
const (
	CategoryInappropriate  = "inappropriate"
	CategoryOfftopic       = "offtopic"
	CategorySuspiciousURLs = "suspiciousURLs"
	CategoryLowQuality     = "lowQuality"
	CategoryMalformed      = "malformed"
)

type PatternRule struct {
	Category string `yaml:"category"`
	Pattern  string `yaml:"pattern"`
	Weight   int    `yaml:"weight"`
}

type Penalties struct {
	Placeholder  float64 `yaml:"placeholder"`
	ShortContent float64 `yaml:"short_content"`
	LongContent  float64 `yaml:"long_content"`
	InsecureURL  float64 `yaml:"insecure_url"`
}

type Config struct {
	Patterns               []PatternRule `yaml:"patterns"`
	Penalties              Penalties     `yaml:"penalties"`
	MinConfidence          float64       `yaml:"min_confidence"`
	DurationToleranceHours float64       `yaml:"duration_tolerance_hours"`
	ShortContentChars      int           `yaml:"short_content_chars"`
	LongContentChars       int           `yaml:"long_content_chars"`
	URLDenylist            []string      `yaml:"url_denylist"`
	RedactionMarker        string        `yaml:"redaction_marker"`
}

// DefaultConfig holds the shipped tables. Weights are empirically chosen and
// tuned via offline eval; treat them as data.
func DefaultConfig() Config {
	return Config{
		Patterns: []PatternRule{
			{Category: CategoryInappropriate, Pattern: `(?i)\b(nsfw|explicit|porn|gambling|violence)\b`, Weight: 12},
			{Category: CategoryInappropriate, Pattern: `(?i)how\s+to\s+(hack|steal|cheat\s+on)`, Weight: 12},
			{Category: CategoryLowQuality, Pattern: `(?i)lorem\s+ipsum`, Weight: 11},
			{Category: CategoryLowQuality, Pattern: `(?i)\b(asdf|qwerty|foobar)\b`, Weight: 11},
			{Category: CategoryOfftopic, Pattern: `(?i)\b(crypto\s+trading|weight\s+loss|dating\s+advice)\b`, Weight: 3},
			{Category: CategorySuspiciousURLs, Pattern: `(?i)https?://\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`, Weight: 6},
			{Category: CategorySuspiciousURLs, Pattern: `(?i)\b(free\s+download|click\s+here\s+now)\b`, Weight: 6},
			{Category: CategoryMalformed, Pattern: `(?i)(\{\{|\}\}|</?[a-z]+>)`, Weight: 2},
		},
		Penalties: Penalties{
			Placeholder:  0.1,
			ShortContent: 0.2,
			LongContent:  0.1,
			InsecureURL:  0.15,
		},
		MinConfidence:          0.5,
		DurationToleranceHours: 0.1,
		ShortContentChars:      50,
		LongContentChars:       10000,
		URLDenylist: []string{
			"bit.ly", "tinyurl.com", "t.co", "goo.gl", "is.gd", "ow.ly", "buff.ly", "rb.gy", "cutt.ly",
		},
		RedactionMarker: "[removed]",
	}
}

// LoadConfig reads a YAML tables file. Empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultConfig(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read safety config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse safety config: %w", err)
	}
	return cfg, nil
}

type compiledRule struct {
	category string
	re       *regexp.Regexp
	weight   int
}

// Tables is the compiled, immutable form injected into the gate.
type Tables struct {
	cfg   Config
	rules []compiledRule

	placeholderRe *regexp.Regexp
	urlRe         *regexp.Regexp
}

func Compile(cfg Config) (*Tables, error) {
	t := &Tables{
		cfg:           cfg,
		placeholderRe: regexp.MustCompile(`(?i)\[(todo|tbd|insert|placeholder|your[ _-][a-z]+|xx+)[^\]]*\]`),
		urlRe:         regexp.MustCompile(`(?i)\bhttps?://[^\s"'<>\)\]]+`),
	}
	for _, r := range cfg.Patterns {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("safety pattern %q: %w", r.Pattern, err)
		}
		t.rules = append(t.rules, compiledRule{category: r.Category, re: re, weight: r.Weight})
	}
	return t, nil
}

func MustCompile(cfg Config) *Tables {
	t, err := Compile(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tables) Config() Config { return t.cfg }
