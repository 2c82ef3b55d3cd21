// Package config reads the TOML settings shared by the command line tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"

	"github.com/ddvk/sceneio/sceneio"
)

type Log struct {
	Level string `toml:"level"`
}

type IO struct {
	Sequential bool `toml:"sequential"`
	// 0 means one worker per CPU
	Workers      int  `toml:"workers"`
	FlipTexcoord bool `toml:"flip_texcoord"`
}

type Config struct {
	Log Log `toml:"log"`
	IO  IO  `toml:"io"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Log: Log{Level: "info"},
		IO:  IO{FlipTexcoord: true},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.IO.Workers < 0 {
		return nil, fmt.Errorf("config %s: negative workers %d", path, cfg.IO.Workers)
	}
	return cfg, nil
}

func (c *Config) Level() (log.Level, error) {
	return log.ParseLevel(c.Log.Level)
}

// Options turns the io section into load and save options.
func (c *Config) Options(logger *log.Logger) []sceneio.Option {
	opts := []sceneio.Option{
		sceneio.WithWorkers(c.IO.Workers),
		sceneio.WithFlipTexcoord(c.IO.FlipTexcoord),
	}
	if c.IO.Sequential {
		opts = append(opts, sceneio.WithSequential())
	}
	if logger != nil {
		opts = append(opts, sceneio.WithLogger(logger))
	}
	return opts
}
