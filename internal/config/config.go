package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mcncl/extractor/internal/coerce"
	"github.com/mcncl/extractor/internal/formatter"
	"github.com/mcncl/extractor/internal/logger"
	"github.com/mcncl/extractor/internal/models"
	"github.com/mcncl/extractor/internal/parser"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for the extractor CLI
type Config struct {
	Mode        string       `yaml:"mode"`
	Format      string       `yaml:"format"`
	Output      string       `yaml:"output"`
	Marker      string       `yaml:"marker"`
	Concurrency int          `yaml:"concurrency"`
	MaxDepth    int          `yaml:"max_depth"`
	Targets     []TargetRule `yaml:"targets"`
	Log         LogConfig    `yaml:"log"`
}

// TargetRule picks a default target type for paths matching Pattern
type TargetRule struct {
	Pattern string `yaml:"pattern"`
	Target  string `yaml:"target"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Mode:        coerce.Lenient.String(),
		Format:      string(parser.FormatAuto),
		Output:      string(formatter.OutputText),
		Concurrency: 4,
		MaxDepth:    8,
		Targets:     []TargetRule{},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".extractor.yml", ".extractor.yaml", "extractor.yml", "extractor.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every setting names something the CLI understands
func (c *Config) Validate() error {
	if _, err := coerce.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("invalid mode: %w", err)
	}
	if _, err := parser.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid input format: %w", err)
	}
	if _, err := formatter.ParseOutput(c.Output); err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	for _, rule := range c.Targets {
		if _, err := models.ParseTargetType(rule.Target); err != nil {
			return fmt.Errorf("target rule '%s': %w", rule.Pattern, err)
		}
	}
	return nil
}

// compilePatterns compiles all target rule patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Targets {
		rule := &c.Targets[i]
		regex, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("invalid target pattern '%s': %w", rule.Pattern, err)
		}
		rule.regex = regex
	}
	return nil
}

// MatchesPath checks if this rule matches the given dotted path
func (r *TargetRule) MatchesPath(path string) bool {
	if r.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(r.Pattern)
		if err != nil {
			return false
		}
		r.regex = regex
	}
	return r.regex.MatchString(path)
}

// FindTarget returns the target of the first rule matching path
func (c *Config) FindTarget(path string) (models.TargetType, bool) {
	for i := range c.Targets {
		if !c.Targets[i].MatchesPath(path) {
			continue
		}
		target, err := models.ParseTargetType(c.Targets[i].Target)
		if err != nil {
			continue
		}
		return target, true
	}
	return 0, false
}

// CLIOverrides carries flag values that take precedence over the config file.
// Empty strings and zero counts leave the file value in place.
type CLIOverrides struct {
	Mode        string
	Format      string
	Output      string
	Marker      string
	Concurrency int
	Debug       bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Mode != "" {
		cfg.Mode = cli.Mode
	}
	if cli.Format != "" {
		cfg.Format = cli.Format
	}
	if cli.Output != "" {
		cfg.Output = cli.Output
	}
	if cli.Marker != "" {
		cfg.Marker = cli.Marker
	}
	if cli.Concurrency > 0 {
		cfg.Concurrency = cli.Concurrency
	}
	if cli.Debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
