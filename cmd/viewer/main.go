package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/Carmen-Shannon/oxy-viewer/viewer"
)

func init() {
	// GLFW and the WebGPU surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configDir := flag.String("config", ".", "directory containing viewer.{json,yaml,toml}")
	modelPath := flag.String("model", "", "GLB file to display, overrides model.path")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		boot := logging.New("info", os.Stderr)
		boot.Fatal().Err(err).Str("dir", *configDir).Msg("failed to load config")
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)
	if used := config.ConfigFileUsed(); used != "" {
		logger.Info().Str("file", used).Msg("config loaded")
	}

	v, err := viewer.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start viewer")
	}
	if err := v.Run(); err != nil {
		logger.Fatal().Err(err).Msg("viewer stopped")
	}
}
