// Package config loads the operator console configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/rovermap/gridmap"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Workspace backends.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Config is the console configuration.
type Config struct {
	Map       Map       `yaml:"map"`
	Search    Search    `yaml:"search"`
	Preview   Preview   `yaml:"preview"`
	Workspace Workspace `yaml:"workspace"`
	Metrics   Metrics   `yaml:"metrics"`
	Log       Log       `yaml:"log"`
}

// Map holds the defaults for a new map and the route annotation mark.
// Marks are single characters.
type Map struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Obstacle string `yaml:"obstacle"`
	Empty    string `yaml:"empty"`
	Route    string `yaml:"route"`
}

// Search bounds a route search. A zero Timeout means no limit.
type Search struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Preview sets the Simplify factor used for the terminal preview.
type Preview struct {
	Factor int `yaml:"factor"`
}

// Workspace selects where maps are stored.
type Workspace struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

// Metrics configures the Prometheus endpoint. An empty Addr disables it.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Log configures the slog level: debug, info, warn or error.
type Log struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Map: Map{
			Width:    40,
			Height:   20,
			Obstacle: "1",
			Empty:    "0",
			Route:    "*",
		},
		Search:    Search{Timeout: 5 * time.Second},
		Preview:   Preview{Factor: 1},
		Workspace: Workspace{Backend: BackendFile, Dir: "maps"},
		Log:       Log{Level: "info"},
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML over Default(), so omitted keys keep their defaults,
// then validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Map.Width < 1 || c.Map.Height < 1 {
		return fmt.Errorf("%w: map size %dx%d", ErrInvalidConfig, c.Map.Width, c.Map.Height)
	}
	marks := []struct{ name, value string }{
		{"obstacle", c.Map.Obstacle},
		{"empty", c.Map.Empty},
		{"route", c.Map.Route},
	}
	for _, m := range marks {
		if len(m.value) != 1 || m.value[0] == gridmap.Separator {
			return fmt.Errorf("%w: map.%s must be a single character, got %q", ErrInvalidConfig, m.name, m.value)
		}
	}
	if c.Map.Obstacle == c.Map.Empty {
		return fmt.Errorf("%w: map.obstacle and map.empty are both %q", ErrInvalidConfig, c.Map.Obstacle)
	}
	// Stale route marks are cleared back to empty before each search, so the
	// route mark must not collide with either reserved mark.
	if c.Map.Route == c.Map.Obstacle || c.Map.Route == c.Map.Empty {
		return fmt.Errorf("%w: map.route %q must differ from map.obstacle and map.empty", ErrInvalidConfig, c.Map.Route)
	}
	if c.Search.Timeout < 0 {
		return fmt.Errorf("%w: search.timeout %v is negative", ErrInvalidConfig, c.Search.Timeout)
	}
	if c.Preview.Factor < 1 {
		return fmt.Errorf("%w: preview.factor must be >= 1, got %d", ErrInvalidConfig, c.Preview.Factor)
	}
	switch c.Workspace.Backend {
	case BackendFile, BackendBadger:
	default:
		return fmt.Errorf("%w: workspace.backend %q", ErrInvalidConfig, c.Workspace.Backend)
	}
	if c.Workspace.Dir == "" {
		return fmt.Errorf("%w: workspace.dir is empty", ErrInvalidConfig)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// Marks returns the obstacle, empty and route marks as bytes.
// Call only on a validated Config.
func (m Map) Marks() (obstacle, empty, route byte) {
	return m.Obstacle[0], m.Empty[0], m.Route[0]
}

// NewGrid creates an empty map with the configured size and marks.
func (m Map) NewGrid() (*gridmap.GridMap, error) {
	obstacle, empty, _ := m.Marks()

	return gridmap.New(m.Width, m.Height, obstacle, empty)
}

// SlogLevel maps Level to a slog.Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, l.Level)
	}

	return lvl, nil
}
