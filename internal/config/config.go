// Package config loads the optional TOML file that overrides the default
// arena layout, round rules, and window settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/Garsondee/Ricochet-Tanks/internal/game"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

const maxTickRate = 240

type PointConfig struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

type RectConfig struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	W float64 `toml:"w"`
	H float64 `toml:"h"`
}

type ArenaConfig struct {
	Width     float64      `toml:"width"`
	Height    float64      `toml:"height"`
	Obstacles []RectConfig `toml:"obstacles"`
}

type PlayerConfig struct {
	Start       PointConfig `toml:"start"`
	MaxShots    int         `toml:"max_shots"`
	ShotBounces int         `toml:"shot_bounces"`
}

type EnemiesConfig struct {
	Spawn []PointConfig `toml:"spawn"`
}

type SimConfig struct {
	TickRate     int   `toml:"tick_rate"`
	Seed         int64 `toml:"seed"` // 0 picks a time-based seed
	EndOnVictory bool  `toml:"end_on_victory"`
}

type UIConfig struct {
	Title string  `toml:"title"`
	Scale float64 `toml:"scale"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type Config struct {
	Arena   ArenaConfig   `toml:"arena"`
	Player  PlayerConfig  `toml:"player"`
	Enemies EnemiesConfig `toml:"enemies"`
	Sim     SimConfig     `toml:"sim"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// Default returns the built-in configuration: the 500×500 arena with its
// two walls, two enemies, and a 60 Hz tick.
func Default() *Config {
	rules := game.DefaultRules()
	cfg := &Config{
		Arena: ArenaConfig{
			Width:  rules.Arena.W,
			Height: rules.Arena.H,
		},
		Player: PlayerConfig{
			Start:       PointConfig{X: rules.PlayerStart.X, Y: rules.PlayerStart.Y},
			MaxShots:    rules.MaxPlayerShots,
			ShotBounces: rules.PlayerShotBounces,
		},
		Sim: SimConfig{
			TickRate:     60,
			EndOnVictory: rules.EndOnVictory,
		},
		UI: UIConfig{
			Title: "Ricochet Tanks",
			Scale: 1,
		},
		Log: LogConfig{Level: "info"},
	}
	for _, o := range rules.Obstacles {
		cfg.Arena.Obstacles = append(cfg.Arena.Obstacles, RectConfig{X: o.X, Y: o.Y, W: o.W, H: o.H})
	}
	for _, s := range rules.EnemySpawns {
		cfg.Enemies.Spawn = append(cfg.Enemies.Spawn, PointConfig{X: s.X, Y: s.Y})
	}
	return cfg
}

// Load reads fileName over the defaults. An empty fileName returns the
// defaults unchanged.
func Load(fileName string) (*Config, error) {
	if fileName == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result. Keys that
// are absent keep their default values; arrays that are present replace the
// default arrays.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a playable round.
func (c *Config) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("%w: arena size %vx%v", ErrInvalid, c.Arena.Width, c.Arena.Height)
	}
	if c.Sim.TickRate <= 0 || c.Sim.TickRate > maxTickRate {
		return fmt.Errorf("%w: tick_rate %d outside (0,%d]", ErrInvalid, c.Sim.TickRate, maxTickRate)
	}
	if c.Player.MaxShots < 0 {
		return fmt.Errorf("%w: max_shots %d", ErrInvalid, c.Player.MaxShots)
	}
	if c.Player.ShotBounces < 0 {
		return fmt.Errorf("%w: shot_bounces %d", ErrInvalid, c.Player.ShotBounces)
	}
	if c.UI.Scale <= 0 {
		return fmt.Errorf("%w: ui scale %v", ErrInvalid, c.UI.Scale)
	}
	for i, o := range c.Arena.Obstacles {
		if o.W <= 0 || o.H <= 0 {
			return fmt.Errorf("%w: obstacle %d has size %vx%v", ErrInvalid, i, o.W, o.H)
		}
	}

	r := c.Rules()
	const body = 20
	start := game.Rect{X: r.PlayerStart.X, Y: r.PlayerStart.Y, W: body, H: body}
	if !r.Arena.InBounds(start) {
		return fmt.Errorf("%w: player start (%v,%v) outside arena", ErrInvalid, start.X, start.Y)
	}
	if start.CollideIndex(r.Obstacles) >= 0 {
		return fmt.Errorf("%w: player start (%v,%v) overlaps an obstacle", ErrInvalid, start.X, start.Y)
	}
	// Spawns sit strictly inside the arena and clear of walls.
	for i, s := range r.EnemySpawns {
		if game.NewEnemy(i, s).Blocked(r.Arena, r.Obstacles) {
			return fmt.Errorf("%w: enemy spawn %d (%v,%v) touches an arena edge or obstacle", ErrInvalid, i, s.X, s.Y)
		}
	}
	return nil
}

// Rules converts the configuration into round rules.
func (c *Config) Rules() game.Rules {
	r := game.Rules{
		Arena:             game.Arena{W: c.Arena.Width, H: c.Arena.Height},
		PlayerStart:       game.Vec{X: c.Player.Start.X, Y: c.Player.Start.Y},
		MaxPlayerShots:    c.Player.MaxShots,
		PlayerShotBounces: c.Player.ShotBounces,
		EndOnVictory:      c.Sim.EndOnVictory,
	}
	for _, o := range c.Arena.Obstacles {
		r.Obstacles = append(r.Obstacles, game.Rect{X: o.X, Y: o.Y, W: o.W, H: o.H})
	}
	for _, s := range c.Enemies.Spawn {
		r.EnemySpawns = append(r.EnemySpawns, game.Vec{X: s.X, Y: s.Y})
	}
	return r
}
