package main

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// cliConfig holds the preview settings read from the config file.
type cliConfig struct {
	Listen      string  `yaml:"listen"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	ResizeMode  string  `yaml:"resize_mode"`
	FrameRate   float64 `yaml:"frame_rate"`
	JPEGQuality int     `yaml:"jpeg_quality"`
	DownloadDir string  `yaml:"download_dir"`
	Poster      string  `yaml:"poster"`
}

func defaultConfig() *cliConfig {
	return &cliConfig{
		Listen:      ":8090",
		Width:       640,
		Height:      360,
		ResizeMode:  "cover",
		FrameRate:   30,
		JPEGQuality: 80,
	}
}

// loadConfig reads configuration from file or returns defaults.
func loadConfig(path string) (*cliConfig, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	candidates := []string{
		"./vidview.yaml",
		"./vidview.yml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// withConfig stores the config in the command context.
func withConfig(ctx context.Context, cfg *cliConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the config stored by the root command.
func configFromContext(ctx context.Context) *cliConfig {
	if cfg, ok := ctx.Value(configKey).(*cliConfig); ok {
		return cfg
	}
	return defaultConfig()
}
