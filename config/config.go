package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Debug   DebugConfig   `toml:"debug"`
	Assets  AssetsConfig  `toml:"assets"`
	Physics PhysicsConfig `toml:"physics"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	TPS    int    `toml:"tps"`
}

type DebugConfig struct {
	Overlay    bool    `toml:"overlay"`
	Physics    bool    `toml:"physics"`
	PixelScale float64 `toml:"pixel_scale"` // screen pixels per simulation unit
	HotReload  bool    `toml:"hot_reload"`
}

type AssetsConfig struct {
	Root        string `toml:"root"`
	Concurrency int    `toml:"concurrency"` // parallel file loads
	SampleRate  int    `toml:"sample_rate"`
}

type PhysicsConfig struct {
	Gravity float64 `toml:"gravity"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the config at path over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window tps must be positive, got %d", c.Window.TPS)
	}
	if c.Assets.Root == "" {
		return errors.New("assets root is empty")
	}
	if c.Assets.Concurrency <= 0 {
		c.Assets.Concurrency = 1
	}
	if c.Debug.PixelScale <= 0 {
		c.Debug.PixelScale = Defaults().Debug.PixelScale
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Warehouse",
			Width:  1280,
			Height: 720,
			TPS:    60,
		},
		Debug: DebugConfig{
			Overlay:    true,
			PixelScale: 40,
			HotReload:  true,
		},
		Assets: AssetsConfig{
			Root:        "assets",
			Concurrency: 4,
			SampleRate:  44100,
		},
		Physics: PhysicsConfig{
			Gravity: -9.81,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
