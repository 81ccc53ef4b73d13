// Package config loads the YAML settings for the world engines and viewers.
package config

import (
	"io"
	"os"
	"slices"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Occlusion strategy names accepted in render.strategies.
const (
	StrategyCutaway      = "cutaway"
	StrategyFlatFloor    = "flat-floor"
	StrategyOccluderFade = "occluder-fade"
	StrategyOverlay      = "overlay"
)

var knownStrategies = []string{StrategyCutaway, StrategyFlatFloor, StrategyOccluderFade, StrategyOverlay}

var ErrInvalid = eris.New("invalid configuration")

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Collision CollisionConfig `yaml:"collision"`
	Render    RenderConfig    `yaml:"render"`
	Server    ServerConfig    `yaml:"server"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path,omitempty"`
}

// CollisionConfig tunes movement resolution.
type CollisionConfig struct {
	// MaxIterations bounds the clamp/re-test loop per move.
	MaxIterations int `yaml:"max_iterations"`
	// Epsilon is the overlap below which boxes count as touching.
	Epsilon float64 `yaml:"epsilon"`
	// QueryMargin widens the swept cell range to catch boxes anchored
	// outside the cells they reach into.
	QueryMargin int     `yaml:"query_margin"`
	Gravity     float64 `yaml:"gravity"`
}

// RenderConfig describes the isometric projection and occlusion strategies.
type RenderConfig struct {
	TileWidth   int              `yaml:"tile_width"`
	TileHeight  int              `yaml:"tile_height"`
	LayerHeight int              `yaml:"layer_height"`
	Strategies  []StrategyConfig `yaml:"strategies"`
}

// StrategyConfig selects one occlusion strategy. Layer, Hide and Alpha are
// read by the cutaway and occluder-fade strategies.
type StrategyConfig struct {
	Name  string  `yaml:"name"`
	Layer int     `yaml:"layer,omitempty"`
	Hide  bool    `yaml:"hide,omitempty"`
	Alpha float64 `yaml:"alpha,omitempty"`
}

type ServerConfig struct {
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
	FPS     int    `yaml:"fps"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Collision: CollisionConfig{
			MaxIterations: 8,
			Epsilon:       1e-9,
			QueryMargin:   1,
			Gravity:       -9.8,
		},
		Render: RenderConfig{
			TileWidth:   4,
			TileHeight:  2,
			LayerHeight: 2,
			Strategies: []StrategyConfig{
				{Name: StrategyFlatFloor},
				{Name: StrategyOccluderFade, Alpha: 0.35},
				{Name: StrategyOverlay},
			},
		},
		Server: ServerConfig{Port: 2222, HostKey: "server_host_key", FPS: 20},
	}
}

// Load reads and validates a YAML file on top of Default.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "open config %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML from r on top of Default and validates the result.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, eris.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the engines cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Collision.MaxIterations <= 0:
		return eris.Wrapf(ErrInvalid, "collision.max_iterations must be positive, got %d", c.Collision.MaxIterations)
	case c.Collision.Epsilon < 0:
		return eris.Wrapf(ErrInvalid, "collision.epsilon must not be negative, got %g", c.Collision.Epsilon)
	case c.Collision.QueryMargin < 0:
		return eris.Wrapf(ErrInvalid, "collision.query_margin must not be negative, got %d", c.Collision.QueryMargin)
	case c.Render.TileWidth <= 0 || c.Render.TileHeight <= 0 || c.Render.LayerHeight <= 0:
		return eris.Wrapf(ErrInvalid, "render tile sizes must be positive")
	case c.Server.FPS <= 0:
		return eris.Wrapf(ErrInvalid, "server.fps must be positive, got %d", c.Server.FPS)
	}
	for _, s := range c.Render.Strategies {
		if !slices.Contains(knownStrategies, s.Name) {
			return eris.Wrapf(ErrInvalid, "unknown occlusion strategy %q", s.Name)
		}
		if s.Alpha < 0 || s.Alpha > 1 {
			return eris.Wrapf(ErrInvalid, "strategy %s alpha %g outside [0,1]", s.Name, s.Alpha)
		}
	}
	return nil
}
