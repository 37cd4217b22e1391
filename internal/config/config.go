// Package config loads ls-starfield settings from defaults, an optional YAML
// file, LS_STARFIELD_* environment variables and bound command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/viper"

	"github.com/litescript/ls-starfield/internal/canvas"
)

const (
	minFPS = 1
	maxFPS = 120

	// FileName is the config file looked up in the home directory.
	FileName = ".ls-starfield"
)

// Config holds every user-tunable setting.
type Config struct {
	LogLevel   string  `mapstructure:"log_level"`
	LogFile    string  `mapstructure:"log_file"`
	Seed       int64   `mapstructure:"seed"`
	FPS        int     `mapstructure:"fps"`
	CellWidth  float64 `mapstructure:"cell_width"`
	CellHeight float64 `mapstructure:"cell_height"`
	Overlay    bool    `mapstructure:"overlay"`
	Background string  `mapstructure:"background"`
	ASCII      bool    `mapstructure:"ascii"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	def := canvas.DefaultConfig()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("seed", 0)
	v.SetDefault("fps", 60)
	v.SetDefault("cell_width", def.CellWidth)
	v.SetDefault("cell_height", def.CellHeight)
	v.SetDefault("overlay", true)
	v.SetDefault("background", def.Background.Hex())
	// Ambiguous-width star glyphs take two cells under CJK locales.
	v.SetDefault("ascii", runewidth.IsEastAsian())
}

// Load reads configuration into a Config. If path is empty the file is
// looked up as $HOME/.ls-starfield.yaml and may be absent.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("LS_STARFIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize clamps numeric settings into range and validates the rest.
func (c *Config) normalize() error {
	if c.FPS < minFPS {
		c.FPS = minFPS
	} else if c.FPS > maxFPS {
		c.FPS = maxFPS
	}
	def := canvas.DefaultConfig()
	if !(c.CellWidth > 0) {
		c.CellWidth = def.CellWidth
	}
	if !(c.CellHeight > 0) {
		c.CellHeight = def.CellHeight
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return fmt.Errorf("invalid background color %q: %w", c.Background, err)
	}
	if c.LogFile != "" {
		c.LogFile = filepath.Clean(c.LogFile)
	}
	return nil
}

// FrameInterval returns the delay between frames.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

// Canvas returns the cell geometry and background for terminal surfaces.
func (c Config) Canvas() canvas.Config {
	bg, err := colorful.Hex(c.Background)
	if err != nil {
		bg = canvas.DefaultBackground
	}
	return canvas.Config{
		CellWidth:  c.CellWidth,
		CellHeight: c.CellHeight,
		Background: bg,
		ASCII:      c.ASCII,
	}
}
