package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonbeautifier/internal/session"
	"github.com/mcncl/jsonbeautifier/internal/theme"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config_test_*.yml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "blue", cfg.Theme)
	assert.Equal(t, "json", cfg.Mode)
	assert.Equal(t, 0, cfg.CollapseDepth)
	assert.Equal(t, 2, cfg.Output.Indent)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 100, cfg.Watch.DebounceMS)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
theme: "Emerald Green"
mode: jwt
collapse_depth: 2
state_file: /tmp/jb-state.yml
output:
  indent: 4
  color: NEVER
log:
  level: debug
  file: /tmp/jb.log
watch:
  debounce_ms: 250
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "green", cfg.Theme)
	assert.Equal(t, theme.Green, cfg.ThemeID())
	assert.Equal(t, session.ModeJWT, cfg.SessionMode())
	assert.Equal(t, 2, cfg.CollapseDepth)
	assert.Equal(t, "/tmp/jb-state.yml", cfg.StateFile)
	assert.Equal(t, "    ", cfg.IndentString())
	assert.Equal(t, ColorNever, cfg.Output.Color)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/jb.log", cfg.Log.File)
	assert.Equal(t, 250, cfg.Watch.DebounceMS)
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "theme: red\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "red", cfg.Theme)
	assert.Equal(t, 2, cfg.Output.Indent)
	assert.Equal(t, 100, cfg.Watch.DebounceMS)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, `
theme: "blue"
invalid_yaml: [unclosed array
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown theme", func(c *Config) { c.Theme = "purple" }, "invalid theme"},
		{"unknown mode", func(c *Config) { c.Mode = "xml" }, "invalid mode"},
		{"negative collapse depth", func(c *Config) { c.CollapseDepth = -1 }, "collapse_depth"},
		{"zero indent", func(c *Config) { c.Output.Indent = 0 }, "output.indent"},
		{"huge indent", func(c *Config) { c.Output.Indent = 9 }, "output.indent"},
		{"bad color", func(c *Config) { c.Output.Color = "sometimes" }, "output.color"},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -5 }, "watch.debounce_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateNormalizes(t *testing.T) {
	cfg := NewConfig()
	cfg.Theme = "rose_red"
	cfg.Mode = "JWT"
	cfg.Output.Color = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "red", cfg.Theme)
	assert.Equal(t, "jwt", cfg.Mode)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	configPath := filepath.Join(tmpDir, "project", ".jsonbeautifier.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`theme: "yellow"`), 0o644))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(nestedDir))

	// Should find it in the parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `theme: "yellow"`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir := t.TempDir()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(tmpDir))

	assert.Empty(t, FindConfigFile())
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	path := writeConfig(t, `
theme: green
collapse_depth: 1
output:
  color: always
log:
  level: warn
`)

	depth := 3
	cfg, err := LoadConfigWithCLI(path, Overrides{
		Theme:         "Cool White",
		JWT:           true,
		CollapseDepth: &depth,
		NoColor:       true,
		Debug:         true,
	})
	require.NoError(t, err)

	// CLI > config file > defaults
	assert.Equal(t, "white", cfg.Theme)
	assert.Equal(t, "jwt", cfg.Mode)
	assert.Equal(t, 3, cfg.CollapseDepth)
	assert.Equal(t, ColorNever, cfg.Output.Color)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Output.Indent)
}

func TestLoadConfigWithPrecedence_NoOverrides(t *testing.T) {
	path := writeConfig(t, `
theme: green
collapse_depth: 1
`)

	cfg, err := LoadConfigWithCLI(path, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "green", cfg.Theme)
	assert.Equal(t, 1, cfg.CollapseDepth)
	assert.Equal(t, "json", cfg.Mode)
}

func TestLoadConfigWithCLI_NoFile(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", Overrides{Theme: "nope"})
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid theme")
}
