package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/arbgen/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Sources{Dir: t.TempDir(), Home: t.TempDir()})
	require.NoError(t, err)

	want := Default()
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadProjectOverridesUser(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".arbgen", FileName), `
[output]
file = "user_gen.go"
tests = false

[watch]
debounce_ms = 50
`)

	root := t.TempDir()
	project := filepath.Join(root, FileName)
	writeFile(t, project, `
[output]
file = "project_gen.go"
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := Load(Sources{Dir: nested, Home: home})
	require.NoError(t, err)

	assert.Equal(t, "project_gen.go", cfg.Output.File)
	assert.False(t, cfg.Output.Tests, "user value survives when project is silent")
	assert.Equal(t, 50, cfg.Watch.DebounceMS)
	assert.Equal(t, DefaultOutputTestFile, cfg.Output.TestFile)
	require.Len(t, cfg.Files, 2)
	assert.Equal(t, project, cfg.Files[1])
}

func TestLoadEnvironmentWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[derive]\nmethods = true\n")
	t.Setenv("ARBGEN_DERIVE_METHODS", "false")
	t.Setenv("ARBGEN_LOG_JSON", "true")

	cfg, err := Load(Sources{Dir: root, Home: t.TempDir()})
	require.NoError(t, err)
	assert.False(t, cfg.Derive.Methods)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, "[derive]\ndirective = \"gen:arb\"\n")

	cfg, err := Load(Sources{File: path})
	require.NoError(t, err)
	assert.Equal(t, "gen:arb", cfg.Derive.Directive)
	assert.Equal(t, []string{path}, cfg.Files)

	_, err = Load(Sources{File: filepath.Join(t.TempDir(), "missing.toml")})
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[watch]\ndebounce_ms = -1\n")

	_, err := Load(Sources{File: path})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInputError(err))
	assert.Contains(t, errors.FlattenHints(err), path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"test file as output", func(c *Config) { c.Output.File = "x_test.go" }},
		{"non-go output", func(c *Config) { c.Output.File = "gen.txt" }},
		{"test file without suffix", func(c *Config) { c.Output.TestFile = "gen.go" }},
		{"path in name", func(c *Config) { c.Output.File = "sub/gen.go" }},
		{"same names", func(c *Config) { c.Output.File = "a_test.go"; c.Output.TestFile = "a_test.go" }},
		{"empty directive", func(c *Config) { c.Derive.Directive = "" }},
		{"slashed directive", func(c *Config) { c.Derive.Directive = "//arbgen:derive" }},
		{"spaced directive", func(c *Config) { c.Derive.Directive = "arbgen derive" }},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.True(t, errors.IsInvalidInputError(cfg.Validate()))
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, WriteDefault(path, false))

	cfg, err := Load(Sources{File: path})
	require.NoError(t, err)
	cfg.Files = nil
	assert.Equal(t, Default(), cfg)

	err = WriteDefault(path, false)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--force")

	writeFile(t, path, "# edited\n")
	require.NoError(t, WriteDefault(path, true))
	old, err := os.ReadFile(path + backupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "# edited\n", string(old))
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	assert.Empty(t, FindProjectConfig(root))

	writeFile(t, filepath.Join(root, FileName), "")
	deep := filepath.Join(root, "x", "y")
	require.NoError(t, os.MkdirAll(deep, 0755))
	assert.Equal(t, filepath.Join(root, FileName), FindProjectConfig(deep))
}
