package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pondsim/internal/pond"
)

const (
	DefaultTicks       = 600
	DefaultScript      = "tap"
	DefaultScale       = 1
	DefaultGUIFPS      = 60
	DefaultTUIFPS      = 30
	DefaultCellSize    = 8
	DefaultBaseFreq    = 220.0
	DefaultVolume      = 0.2
	DefaultSampleEvery = 1
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Pond  PondConfig  `yaml:"pond"`
	Run   RunConfig   `yaml:"run"`
	GUI   GUIConfig   `yaml:"gui"`
	Audio AudioConfig `yaml:"audio"`
	TUI   TUIConfig   `yaml:"tui"`
}

// PondConfig mirrors pond.Config with string-typed enums for YAML.
type PondConfig struct {
	Width        int     `yaml:"width" json:"width"`
	Height       int     `yaml:"height" json:"height"`
	AnchorX      int     `yaml:"anchor_x" json:"anchor_x"`
	AnchorY      int     `yaml:"anchor_y" json:"anchor_y"`
	FingerWidth  int     `yaml:"finger_width" json:"finger_width"`
	DefaultValue float64 `yaml:"default_value" json:"default_value"`
	TouchedValue float64 `yaml:"touched_value" json:"touched_value"`
	MaxAge       float64 `yaml:"max_age" json:"max_age"`
	Mode         string  `yaml:"mode" json:"mode"`
	OriginPolicy string  `yaml:"origin_policy" json:"origin_policy"`
}

type RunConfig struct {
	Ticks       int    `yaml:"ticks"`
	Seed        int64  `yaml:"seed"`
	Script      string `yaml:"script"`
	Interval    int    `yaml:"interval"`
	ProbeX      int    `yaml:"probe_x"`
	ProbeY      int    `yaml:"probe_y"`
	SampleEvery int    `yaml:"sample_every"`
}

type GUIConfig struct {
	Scale int  `yaml:"scale"`
	FPS   int  `yaml:"fps"`
	HUD   bool `yaml:"hud"`
}

type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	BaseFreq float64 `yaml:"base_freq"`
	Volume   float64 `yaml:"volume"`
}

type TUIConfig struct {
	FPS      int `yaml:"fps"`
	CellSize int `yaml:"cell_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Pond: PondConfig{
			Width:        pond.DefaultWidth,
			Height:       pond.DefaultHeight,
			AnchorX:      pond.DefaultAnchorX,
			AnchorY:      pond.DefaultAnchorY,
			FingerWidth:  pond.DefaultFingerWidth,
			DefaultValue: pond.DefaultRestingValue,
			TouchedValue: pond.DefaultTouchedValue,
			MaxAge:       pond.DefaultMaxAge,
			Mode:         pond.PropagatingRipple.String(),
			OriginPolicy: pond.OriginNearest.String(),
		},
		Run: RunConfig{
			Ticks:       DefaultTicks,
			Script:      DefaultScript,
			Interval:    60,
			ProbeX:      pond.DefaultAnchorX + 50,
			ProbeY:      pond.DefaultAnchorY,
			SampleEvery: DefaultSampleEvery,
		},
		GUI: GUIConfig{
			Scale: DefaultScale,
			FPS:   DefaultGUIFPS,
			HUD:   true,
		},
		Audio: AudioConfig{
			BaseFreq: DefaultBaseFreq,
			Volume:   DefaultVolume,
		},
		TUI: TUIConfig{
			FPS:      DefaultTUIFPS,
			CellSize: DefaultCellSize,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToPond converts the pond section into a validated core configuration.
func (c *Config) ToPond() (pond.Config, error) {
	mode, err := pond.ParseMode(c.Pond.Mode)
	if err != nil {
		return pond.Config{}, err
	}
	origin, err := pond.ParseOriginPolicy(c.Pond.OriginPolicy)
	if err != nil {
		return pond.Config{}, err
	}
	pc := pond.Config{
		Width:        c.Pond.Width,
		Height:       c.Pond.Height,
		Anchor:       pond.Coordinate{X: c.Pond.AnchorX, Y: c.Pond.AnchorY},
		FingerWidth:  c.Pond.FingerWidth,
		DefaultValue: c.Pond.DefaultValue,
		TouchedValue: c.Pond.TouchedValue,
		MaxAge:       c.Pond.MaxAge,
		Mode:         mode,
		Origin:       origin,
	}
	if err := pc.Validate(); err != nil {
		return pond.Config{}, err
	}
	return pc, nil
}

// Probe is the coordinate sampled by the probe metric.
func (c *Config) Probe() pond.Coordinate {
	return pond.Coordinate{X: c.Run.ProbeX, Y: c.Run.ProbeY}
}

// Validate checks every section. Pond errors unwrap to pond.ErrInvalidConfig,
// the rest to ErrInvalid.
func (c *Config) Validate() error {
	if _, err := c.ToPond(); err != nil {
		return err
	}
	if c.Run.Ticks <= 0 {
		return fmt.Errorf("%w: run.ticks must be positive, got %d", ErrInvalid, c.Run.Ticks)
	}
	if c.Run.SampleEvery <= 0 {
		return fmt.Errorf("%w: run.sample_every must be positive, got %d", ErrInvalid, c.Run.SampleEvery)
	}
	if c.Run.ProbeX < 0 || c.Run.ProbeX >= c.Pond.Width || c.Run.ProbeY < 0 || c.Run.ProbeY >= c.Pond.Height {
		return fmt.Errorf("%w: run probe (%d,%d) outside %dx%d grid", ErrInvalid, c.Run.ProbeX, c.Run.ProbeY, c.Pond.Width, c.Pond.Height)
	}
	if c.GUI.Scale <= 0 {
		return fmt.Errorf("%w: gui.scale must be positive, got %d", ErrInvalid, c.GUI.Scale)
	}
	if c.GUI.FPS <= 0 || c.TUI.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive", ErrInvalid)
	}
	if c.TUI.CellSize <= 0 {
		return fmt.Errorf("%w: tui.cell_size must be positive, got %d", ErrInvalid, c.TUI.CellSize)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be in [0,1], got %g", ErrInvalid, c.Audio.Volume)
	}
	if c.Audio.BaseFreq <= 0 {
		return fmt.Errorf("%w: audio.base_freq must be positive, got %g", ErrInvalid, c.Audio.BaseFreq)
	}
	return nil
}
