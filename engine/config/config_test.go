package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Model Viewer", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "models/Volumenes.glb", cfg.Model.Path)
	assert.False(t, cfg.Model.Watch)
	assert.Equal(t, float32(75), cfg.Camera.Fov)
	assert.InDelta(t, 0.1, cfg.Camera.Near, 1e-6)
	assert.Equal(t, float32(1000), cfg.Camera.Far)
	assert.Equal(t, float32(45), cfg.Sun.Azimuth)
	assert.Equal(t, float32(45), cfg.Sun.Elevation)
	assert.Equal(t, 1024, cfg.Shadow.MapSize)
	assert.Equal(t, float32(5), cfg.Panel.SunStep)
	assert.True(t, cfg.Renderer.VSync)
	assert.Equal(t, 4, cfg.Renderer.MSAA)
	assert.False(t, cfg.Renderer.Software)
	assert.False(t, cfg.Profiler.Enabled)
	assert.Empty(t, ConfigFileUsed())
}

func TestLoad_MissingDirectoryUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	cfg, err := Load("/nonexistent/path")
	require.NoError(t, err)
	assert.Equal(t, "models/Volumenes.glb", cfg.Model.Path)
}

func TestLoad_FileOverrides(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{
			name:     "json",
			filename: "viewer.json",
			content:  `{"logLevel": "debug", "model": {"path": "a.glb", "watch": true}, "sun": {"azimuth": -30}}`,
		},
		{
			name:     "yaml",
			filename: "viewer.yaml",
			content:  "logLevel: debug\nmodel:\n  path: a.glb\n  watch: true\nsun:\n  azimuth: -30\n",
		},
		{
			name:     "toml",
			filename: "viewer.toml",
			content:  "logLevel = \"debug\"\n[model]\npath = \"a.glb\"\nwatch = true\n[sun]\nazimuth = -30\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)

			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.filename), []byte(tt.content), 0644))

			cfg, err := Load(dir)
			require.NoError(t, err)

			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, "a.glb", cfg.Model.Path)
			assert.True(t, cfg.Model.Watch)
			assert.Equal(t, float32(-30), cfg.Sun.Azimuth)
			assert.Equal(t, float32(45), cfg.Sun.Elevation, "unset keys keep their default")
			assert.Equal(t, filepath.Join(dir, tt.filename), ConfigFileUsed())
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("OXY_VIEWER_MODEL_PATH", "env.glb")
	t.Setenv("OXY_VIEWER_PROFILER_ENABLED", "true")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "env.glb", cfg.Model.Path)
	assert.True(t, cfg.Profiler.Enabled)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "viewer.json"), []byte(`{"logLevel":`), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "viewer.json"), []byte(`{"shadow": {"mapSize": 0}}`), 0644))

	_, err := Load(dir)
	assert.ErrorIs(t, err, errInvalidConfig)
}

func TestValidate(t *testing.T) {
	t.Cleanup(viper.Reset)
	cfg, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty model path", func(c *Config) { c.Model.Path = "" }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.Fov = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"negative map size", func(c *Config) { c.Shadow.MapSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := cfg
			tt.mutate(&bad)
			assert.ErrorIs(t, bad.Validate(), errInvalidConfig)
		})
	}
	assert.NoError(t, cfg.Validate())
}
