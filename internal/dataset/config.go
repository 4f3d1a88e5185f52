package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultSeed  = 62
	defaultFolds = 9
)

// FilterSettings is the YAML surface of FilterConfig.
type FilterSettings struct {
	IncludeTypes    []string `yaml:"include_types"`
	ExcludeTypes    []string `yaml:"exclude_types"`
	ReservedOnly    bool     `yaml:"reserved_only"`
	NonreservedOnly bool     `yaml:"nonreserved_only"`
	MinAuthorUsage  int      `yaml:"min_author_usage"`
	EmitTypes       bool     `yaml:"emit_types"`
}

// BalanceSettings is the YAML surface of BalanceConfig.
type BalanceSettings struct {
	FilesPerAuthor int  `yaml:"files_per_author"`
	Exact          bool `yaml:"exact"`
	Multilang      bool `yaml:"multilang"`
	MaxClasses     int  `yaml:"max_classes"`
}

// BaselineSettings configures the training harness.
type BaselineSettings struct {
	MaxFeatures int `yaml:"max_features"`
	Folds       int `yaml:"folds"`
}

// Config controls one pipeline run.
type Config struct {
	Seed         int64                 `yaml:"seed"`
	ShowProgress bool                  `yaml:"show_progress"`
	Inputs       map[Language][]string `yaml:"inputs"`
	Filter       FilterSettings        `yaml:"filter"`
	Balance      BalanceSettings       `yaml:"balance"`
	Baseline     BaselineSettings      `yaml:"baseline"`
}

// LoadConfig loads a pipeline config from YAML and validates it.
func LoadConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}

	cfg.applyDefaults(filepath.Dir(path))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) applyDefaults(configDir string) {
	if cfg.Seed == 0 {
		cfg.Seed = defaultSeed
	}
	if cfg.Balance.FilesPerAuthor == 0 {
		cfg.Balance.FilesPerAuthor = DefaultFilesPerAuthor
	}
	if cfg.Baseline.Folds == 0 {
		cfg.Baseline.Folds = defaultFolds
	}
	for lang, patterns := range cfg.Inputs {
		for i, pattern := range patterns {
			if !filepath.IsAbs(pattern) {
				cfg.Inputs[lang][i] = filepath.Join(configDir, pattern)
			}
		}
	}
}

func (cfg Config) validate() error {
	if len(cfg.Inputs) == 0 {
		return fmt.Errorf("at least one input language is required")
	}
	known := make(map[Language]bool, len(AllLanguages()))
	for _, lang := range AllLanguages() {
		known[lang] = true
	}
	for lang, patterns := range cfg.Inputs {
		if !known[lang] {
			return fmt.Errorf("unknown language %q", lang)
		}
		if len(patterns) == 0 {
			return fmt.Errorf("language %s has no input patterns", lang)
		}
	}
	if cfg.Filter.MinAuthorUsage < 0 {
		return fmt.Errorf("min_author_usage must be >= 0")
	}
	if cfg.Balance.FilesPerAuthor < 1 {
		return fmt.Errorf("files_per_author must be >= 1")
	}
	if cfg.Balance.MaxClasses < 0 {
		return fmt.Errorf("max_classes must be >= 0")
	}
	if cfg.Baseline.Folds < 2 {
		return fmt.Errorf("folds must be >= 2")
	}
	if cfg.Baseline.MaxFeatures < 0 {
		return fmt.Errorf("max_features must be >= 0")
	}
	return nil
}

// Languages returns the configured input languages in the fixed build
// order (python, c, cpp). Master label indices depend on this order.
func (cfg Config) Languages() []Language {
	out := make([]Language, 0, len(cfg.Inputs))
	for _, lang := range AllLanguages() {
		if _, ok := cfg.Inputs[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}

// FilterConfig converts the YAML settings to the core filter config.
func (cfg Config) FilterConfig() FilterConfig {
	return FilterConfig{
		IncludeTypes:    cfg.Filter.IncludeTypes,
		ExcludeTypes:    cfg.Filter.ExcludeTypes,
		ReservedOnly:    cfg.Filter.ReservedOnly,
		NonreservedOnly: cfg.Filter.NonreservedOnly,
		MinAuthorUsage:  cfg.Filter.MinAuthorUsage,
	}
}

// BalanceConfig converts the YAML settings to the core balance config.
func (cfg Config) BalanceConfig() BalanceConfig {
	return BalanceConfig{
		FilesPerAuthor: cfg.Balance.FilesPerAuthor,
		Exact:          cfg.Balance.Exact,
		Multilang:      cfg.Balance.Multilang,
		MaxClasses:     cfg.Balance.MaxClasses,
	}
}
