package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, used, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Empty(t, used)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, "layouts", cfg.LayoutsDir)
	assert.Equal(t, "static", cfg.StaticDir)
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Equal(t, "/_assets", cfg.AssetPrefix)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
siteTitle: Red Ox
outputDir: dist
strict: true
params:
  author: Red
`), 0o644))
	t.Setenv("SITE_LOGLEVEL", "debug")

	cfg, used, err := Load(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, file, used)
	assert.Equal(t, "Red Ox", cfg.SiteTitle)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Red", cfg.Params["author"])
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	base := Config{ContentDir: "content", LayoutsDir: "layouts", StaticDir: "static", OutputDir: "public"}
	require.NoError(t, base.Validate())

	abs, err := filepath.Abs("dist")
	require.NoError(t, err)
	ok := base
	ok.OutputDir = abs
	assert.NoError(t, ok.Validate())

	tests := []struct {
		name      string
		outputDir string
	}{
		{name: "empty", outputDir: ""},
		{name: "same as content", outputDir: "content"},
		{name: "trailing slash", outputDir: "content/"},
		{name: "dot prefix", outputDir: "./content"},
		{name: "working directory", outputDir: "."},
		{name: "filesystem root", outputDir: "/"},
		{name: "inside static", outputDir: "static/out"},
		{name: "via parent", outputDir: "public/../layouts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.OutputDir = tt.outputDir
			assert.Error(t, cfg.Validate())
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
