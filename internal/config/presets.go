package config

import "sort"

// Presets are keyed by mode, then by preset name. Each entry is applied on
// top of DefaultConfig.
var Presets = map[string]map[string]func(*Config){
	"ripple": {
		"classic": func(c *Config) {},
		"small": func(c *Config) {
			c.Pond.Width, c.Pond.Height = 128, 128
			c.Pond.AnchorX, c.Pond.AnchorY = 32, 32
			c.Pond.FingerWidth = 4
			c.Run.ProbeX, c.Run.ProbeY = 64, 32
			c.Run.Ticks = 300
		},
		"rain": func(c *Config) {
			c.Pond.Width, c.Pond.Height = 256, 256
			c.Pond.AnchorX, c.Pond.AnchorY = 128, 128
			c.Pond.MaxAge = 200
			c.Run.Script = "rain"
			c.Run.ProbeX, c.Run.ProbeY = 160, 128
			c.Run.Ticks = 1000
		},
		"storm": func(c *Config) {
			c.Pond.Width, c.Pond.Height = 256, 256
			c.Pond.AnchorX, c.Pond.AnchorY = 100, 100
			c.Pond.OriginPolicy = "peak"
			c.Run.Script = "burst"
			c.Run.ProbeX, c.Run.ProbeY = 110, 100
			c.Run.Ticks = 400
		},
	},
	"instant": {
		"classic": func(c *Config) {
			c.Pond.Mode = "instant"
		},
		"hold": func(c *Config) {
			c.Pond.Mode = "instant"
			c.Pond.Width, c.Pond.Height = 128, 128
			c.Pond.AnchorX, c.Pond.AnchorY = 60, 60
			c.Pond.TouchedValue = 1.0
			c.Run.Script = "hold"
			c.Run.Interval = 30
			c.Run.ProbeX, c.Run.ProbeY = 62, 62
			c.Run.Ticks = 120
		},
	},
}

func GetPreset(mode, preset string) *Config {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	apply, ok := modePresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets(mode string) []string {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modePresets))
	for name := range modePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListModes() []string {
	modes := make([]string, 0, len(Presets))
	for m := range Presets {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return modes
}
