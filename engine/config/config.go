package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. OXY_VIEWER_MODEL_PATH.
const EnvPrefix = "OXY_VIEWER"

// ConfigName is the config file name searched for in the config directory, without extension.
const ConfigName = "viewer"

var errInvalidConfig = errors.New("invalid config")

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Title  string `json:"title" mapstructure:"title"`
	Width  int    `json:"width" mapstructure:"width"`
	Height int    `json:"height" mapstructure:"height"`
}

// ModelConfig holds the asset to load and whether it is reloaded when it changes on disk.
type ModelConfig struct {
	Path  string `json:"path" mapstructure:"path"`
	Watch bool   `json:"watch" mapstructure:"watch"`
}

// CameraConfig holds the perspective camera settings. Fov is in degrees.
type CameraConfig struct {
	Fov  float32 `json:"fov" mapstructure:"fov"`
	Near float32 `json:"near" mapstructure:"near"`
	Far  float32 `json:"far" mapstructure:"far"`
}

// SunConfig holds the startup sun position in degrees.
type SunConfig struct {
	Azimuth   float32 `json:"azimuth" mapstructure:"azimuth"`
	Elevation float32 `json:"elevation" mapstructure:"elevation"`
}

// ShadowConfig holds the shadow map settings.
type ShadowConfig struct {
	MapSize int `json:"mapSize" mapstructure:"mapSize"`
}

// PanelConfig holds the control panel settings.
type PanelConfig struct {
	SunStep float32 `json:"sunStep" mapstructure:"sunStep"`
}

// RendererConfig holds the presentation settings. Software forces the fallback (CPU) adapter.
type RendererConfig struct {
	VSync    bool `json:"vsync" mapstructure:"vsync"`
	MSAA     int  `json:"msaa" mapstructure:"msaa"`
	Software bool `json:"software" mapstructure:"software"`
}

// ProfilerConfig toggles the periodic FPS and memory log line.
type ProfilerConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// Config is the typed view of every viewer setting.
type Config struct {
	LogLevel string         `json:"logLevel" mapstructure:"logLevel"`
	Window   WindowConfig   `json:"window" mapstructure:"window"`
	Model    ModelConfig    `json:"model" mapstructure:"model"`
	Camera   CameraConfig   `json:"camera" mapstructure:"camera"`
	Sun      SunConfig      `json:"sun" mapstructure:"sun"`
	Shadow   ShadowConfig   `json:"shadow" mapstructure:"shadow"`
	Panel    PanelConfig    `json:"panel" mapstructure:"panel"`
	Renderer RendererConfig `json:"renderer" mapstructure:"renderer"`
	Profiler ProfilerConfig `json:"profiler" mapstructure:"profiler"`
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("window.title", "Model Viewer")
	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)

	viper.SetDefault("model.path", "models/Volumenes.glb")
	viper.SetDefault("model.watch", false)

	viper.SetDefault("camera.fov", 75)
	viper.SetDefault("camera.near", 0.1)
	viper.SetDefault("camera.far", 1000)

	viper.SetDefault("sun.azimuth", 45)
	viper.SetDefault("sun.elevation", 45)

	viper.SetDefault("shadow.mapSize", 1024)

	viper.SetDefault("panel.sunStep", 5)

	viper.SetDefault("renderer.vsync", true)
	viper.SetDefault("renderer.msaa", 4)
	viper.SetDefault("renderer.software", false)

	viper.SetDefault("profiler.enabled", false)
}

// Load sets default values, reads an optional viewer.{json,yaml,toml} from configDir
// and applies OXY_VIEWER_* environment overrides. A missing file is not an error.
//
// Parameters:
//   - configDir: the directory searched for the config file, ignored when empty
//
// Returns:
//   - Config: the resolved configuration
//   - error: an error if the file exists but cannot be parsed, or a value is out of range
func Load(configDir string) (Config, error) {
	SetDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configDir != "" {
		viper.SetConfigName(ConfigName)
		viper.AddConfigPath(configDir)

		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the viewer cannot start with.
//
// Returns:
//   - error: an error wrapping errInvalidConfig naming the first bad key
func (c Config) Validate() error {
	switch {
	case c.Model.Path == "":
		return fmt.Errorf("%w: model.path is empty", errInvalidConfig)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", errInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("%w: camera.fov %v", errInvalidConfig, c.Camera.Fov)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip range [%v, %v]", errInvalidConfig, c.Camera.Near, c.Camera.Far)
	case c.Shadow.MapSize <= 0:
		return fmt.Errorf("%w: shadow.mapSize %d", errInvalidConfig, c.Shadow.MapSize)
	}
	return nil
}

// ConfigFileUsed returns the path of the file Load read, or "" when only defaults applied.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
