package serve

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the map streaming server configuration.
type Config struct {
	Addr      string `yaml:"addr"`
	Map       string `yaml:"map"`
	ChunkSize int    `yaml:"chunk_size"`
}

func defaults() Config {
	return Config{
		Addr:      ":8965",
		ChunkSize: 8192,
	}
}

// LoadConfig reads a YAML config file, filling defaults for absent fields.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Addr == "" {
		cfg.Addr = defaults().Addr
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = defaults().ChunkSize
	}
	return cfg, nil
}
