package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mcncl/extractor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".extractor.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "lenient", cfg.Mode)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "text", cfg.Output)
	assert.Empty(t, cfg.Marker)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
mode: forced
format: yaml
output: json
marker: "<bad>"
concurrency: 2
max_depth: 3
targets:
  - pattern: "_at$"
    target: date
  - pattern: "^amounts"
    target: decimal
log:
  level: debug
  json: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "forced", cfg.Mode)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "<bad>", cfg.Marker)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)

	require.Len(t, cfg.Targets, 2)
	assert.Equal(t, "_at$", cfg.Targets[0].Pattern)
	assert.Equal(t, "date", cfg.Targets[0].Target)
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "output: yaml\n"))
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, "lenient", cfg.Mode)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "mode: forced\ntargets: [unclosed array\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_LoadInvalidPattern(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "targets:\n  - pattern: \"[invalid\"\n    target: int\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid target pattern")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"strict alias", func(c *Config) { c.Mode = "strict" }, ""},
		{"bad mode", func(c *Config) { c.Mode = "loose" }, "invalid mode"},
		{"bad format", func(c *Config) { c.Format = "toml" }, "invalid input format"},
		{"bad output", func(c *Config) { c.Output = "xml" }, "invalid output format"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "concurrency must be at least 1"},
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }, "max_depth must be at least 1"},
		{"bad target", func(c *Config) {
			c.Targets = []TargetRule{{Pattern: "x", Target: "float"}}
		}, "unknown target type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	configPath := filepath.Join(tmpDir, "project", "extractor.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`output: "found"`), 0o644))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	require.NoError(t, os.Chdir(nestedDir))

	// Should find it in the parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `output: "found"`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir := t.TempDir()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	require.NoError(t, os.Chdir(tmpDir))

	assert.Empty(t, FindConfigFile())
}

func TestTargetRule_MatchesPath(t *testing.T) {
	rule := TargetRule{Pattern: `\.created_at$`, Target: "date"}

	assert.True(t, rule.MatchesPath("order.created_at"))
	assert.True(t, rule.MatchesPath("a.b.created_at"))
	assert.False(t, rule.MatchesPath("created_at"))
	assert.False(t, rule.MatchesPath("order.created_at_ms"))
}

func TestTargetRule_InvalidPattern(t *testing.T) {
	rule := TargetRule{Pattern: "[invalid regex", Target: "int"}

	// Should not panic and should return false for invalid regex
	assert.False(t, rule.MatchesPath("user_id"))
}

func TestConfig_FindTarget(t *testing.T) {
	cfg := &Config{
		Targets: []TargetRule{
			{Pattern: "_at$", Target: "date"},
			{Pattern: "^amount", Target: "decimal"},
			{Pattern: ".*", Target: "string"},
		},
	}

	target, ok := cfg.FindTarget("created_at")
	require.True(t, ok)
	assert.Equal(t, models.TargetUnixDate, target)

	target, ok = cfg.FindTarget("amount_due")
	require.True(t, ok)
	assert.Equal(t, models.TargetDecimalNumber, target)

	target, ok = cfg.FindTarget("label")
	require.True(t, ok)
	assert.Equal(t, models.TargetString, target)

	_, ok = NewConfig().FindTarget("label")
	assert.False(t, ok)
}

func TestLoadConfigWithCLI(t *testing.T) {
	path := writeConfig(t, "mode: forced\noutput: yaml\nconcurrency: 2\n")

	t.Run("file values without overrides", func(t *testing.T) {
		cfg, err := LoadConfigWithCLI(path, CLIOverrides{})
		require.NoError(t, err)
		assert.Equal(t, "forced", cfg.Mode)
		assert.Equal(t, "yaml", cfg.Output)
		assert.Equal(t, 2, cfg.Concurrency)
	})

	t.Run("flags win", func(t *testing.T) {
		cfg, err := LoadConfigWithCLI(path, CLIOverrides{Output: "json", Concurrency: 8, Marker: "?", Debug: true})
		require.NoError(t, err)
		assert.Equal(t, "forced", cfg.Mode)
		assert.Equal(t, "json", cfg.Output)
		assert.Equal(t, 8, cfg.Concurrency)
		assert.Equal(t, "?", cfg.Marker)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("no file", func(t *testing.T) {
		cfg, err := LoadConfigWithCLI("", CLIOverrides{Mode: "forced"})
		require.NoError(t, err)
		assert.Equal(t, "forced", cfg.Mode)
		assert.Equal(t, "text", cfg.Output)
	})

	t.Run("invalid override", func(t *testing.T) {
		_, err := LoadConfigWithCLI("", CLIOverrides{Output: "xml"})
		assert.Error(t, err)
	})
}
