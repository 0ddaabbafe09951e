package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Display  DisplayConfig     `toml:"display"`
	Logging  LoggingConfig     `toml:"logging"`
	Paths    PathsConfig       `toml:"paths"`
	Dev      DevConfig         `toml:"dev"`
	Audio    AudioConfig       `toml:"audio"`
	Save     SaveConfig        `toml:"save"`
	Keybinds map[string]string `toml:"keybinds"`
}

type DisplayConfig struct {
	Width  int     `toml:"width"` // logical resolution, not window size
	Height int     `toml:"height"`
	Scale  float64 `toml:"scale"`
	Title  string  `toml:"title"`
	VSync  bool    `toml:"vsync"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

type PathsConfig struct {
	Assets string `toml:"assets"`
	Saves  string `toml:"saves"`
	Levels string `toml:"levels"` // empty uses the embedded set
}

type DevConfig struct {
	ShowCollisionBoxes bool `toml:"show_collision_boxes"`
	HotReload          bool `toml:"hot_reload"`
	StartLevel         int  `toml:"start_level"`
}

type AudioConfig struct {
	SampleRate  int     `toml:"sample_rate"`
	MusicVolume float64 `toml:"music_volume"` // 0 mutes, 1 is full volume
}

type SaveConfig struct {
	Slot       string `toml:"slot"`
	Passphrase string `toml:"passphrase"`
}

// Load reads a TOML file on top of the defaults. A missing file is not an
// error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := defaults()
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
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("display scale must be positive, got %v", c.Display.Scale)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 {
		return fmt.Errorf("audio music volume must be in [0, 1], got %v", c.Audio.MusicVolume)
	}
	if c.Dev.StartLevel < 0 {
		return fmt.Errorf("dev start level must not be negative, got %d", c.Dev.StartLevel)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  640,
			Height: 360,
			Scale:  2,
			Title:  "Lumin",
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Paths: PathsConfig{
			Assets: "assets",
			Saves:  "saves",
		},
		Audio: AudioConfig{
			SampleRate:  44100,
			MusicVolume: 0.6,
		},
		Save: SaveConfig{
			Slot:       "slot1",
			Passphrase: "lumin",
		},
		Keybinds: map[string]string{},
	}
}
