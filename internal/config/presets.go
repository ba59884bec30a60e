package config

import "slices"

// Presets are full configurations keyed by name. GetPreset hands out copies.
var Presets = map[string]func() *Config{
	// rand is the interactive explorer: many seeds, random cyan-ish colors.
	"rand": DefaultConfig,

	// classic is the small static picture: ten seeds, fat red lines.
	"classic": func() *Config {
		cfg := DefaultConfig()
		cfg.MaxSeed = 10
		cfg.Window = WindowConfig{Width: 600, Height: 800, Title: "hailstone classic"}
		cfg.Geometry = GeometryConfig{
			OriginX:         200,
			OriginY:         600,
			StartHeadingDeg: DefaultHeadingDeg,
			EvenAngle:       0.05,
			OddAngle:        -0.05,
			StepLength:      2,
		}
		cfg.Colors = ColorConfig{Lower: [3]uint8{255, 0, 0}, Upper: [3]uint8{255, 0, 0}}
		return cfg
	},

	"fern": func() *Config {
		cfg := DefaultConfig()
		cfg.MaxSeed = 5000
		cfg.Geometry.OriginX, cfg.Geometry.OriginY = 540, 700
		cfg.Geometry.EvenAngle, cfg.Geometry.OddAngle = 0.16, -0.3
		cfg.Geometry.StepLength = 2
		cfg.Render.PathWidth = 2
		cfg.Colors = ColorConfig{Lower: [3]uint8{20, 120, 20}, Upper: [3]uint8{90, 220, 90}}
		return cfg
	},

	"coral": func() *Config {
		cfg := DefaultConfig()
		cfg.MaxSeed = 3000
		cfg.Geometry.OriginX, cfg.Geometry.OriginY = 540, 710
		cfg.Geometry.EvenAngle, cfg.Geometry.OddAngle = 0.2, -0.42
		cfg.Geometry.StepLength = 3
		cfg.Render.PathWidth = 3
		cfg.Colors = ColorConfig{Lower: [3]uint8{200, 60, 60}, Upper: [3]uint8{255, 160, 120}}
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
