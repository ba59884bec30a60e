package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/hailstone/internal/paths"
	"github.com/san-kum/hailstone/internal/render"
	"github.com/san-kum/hailstone/internal/turtle"
	"github.com/san-kum/hailstone/internal/view"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSeed       = 1000
	DefaultWidth         = 1080
	DefaultHeight        = 720
	DefaultOriginX       = 300.0
	DefaultOriginY       = 670.0
	DefaultHeadingDeg    = -90.0
	DefaultEvenAngle     = 0.125
	DefaultOddAngle      = -0.225
	DefaultStepLength    = 2.5
	DefaultPathWidth     = 4.0
	DefaultBatchSize     = 300
	DefaultBlobBatchSize = 75
	DefaultDragLimit     = 1000
	DefaultGain          = 0.003
	DefaultTickDelay     = time.Millisecond
	DefaultFPS           = 0
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// FieldError names the offending key in a rejected configuration.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidConfig
}

type Config struct {
	MaxSeed   int64           `yaml:"max_seed"`
	RandSeed  int64           `yaml:"rand_seed"`
	Window    WindowConfig    `yaml:"window"`
	Geometry  GeometryConfig  `yaml:"geometry"`
	Render    RenderConfig    `yaml:"render"`
	Colors    ColorConfig     `yaml:"colors"`
	Animation AnimationConfig `yaml:"animation"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type GeometryConfig struct {
	OriginX         float64 `yaml:"origin_x"`
	OriginY         float64 `yaml:"origin_y"`
	StartHeadingDeg float64 `yaml:"start_heading_deg"`
	EvenAngle       float64 `yaml:"even_angle"`
	OddAngle        float64 `yaml:"odd_angle"`
	StepLength      float64 `yaml:"step_length"`
}

type RenderConfig struct {
	PathWidth      float64       `yaml:"path_width"`
	BatchSize      int           `yaml:"batch_size"`
	BlobBatchSize  int           `yaml:"blob_batch_size"`
	QuickDragLimit int           `yaml:"quick_drag_limit"`
	Gain           float64       `yaml:"gain"`
	TickDelay      time.Duration `yaml:"tick_delay"`
	Background     string        `yaml:"background"`
	FPS            int32         `yaml:"fps"`
}

// ColorConfig bounds each path color per channel, inclusive.
type ColorConfig struct {
	Lower [3]uint8 `yaml:"lower,flow"`
	Upper [3]uint8 `yaml:"upper,flow"`
}

type AnimationConfig struct {
	EvenAmplitude float64 `yaml:"even_amplitude"`
	EvenPeriod    float64 `yaml:"even_period"`
	OddAmplitude  float64 `yaml:"odd_amplitude"`
	OddPeriod     float64 `yaml:"odd_period"`
	ClockMax      int     `yaml:"clock_max"`
}

func DefaultConfig() *Config {
	return &Config{
		MaxSeed: DefaultMaxSeed,
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  "hailstone",
		},
		Geometry: GeometryConfig{
			OriginX:         DefaultOriginX,
			OriginY:         DefaultOriginY,
			StartHeadingDeg: DefaultHeadingDeg,
			EvenAngle:       DefaultEvenAngle,
			OddAngle:        DefaultOddAngle,
			StepLength:      DefaultStepLength,
		},
		Render: RenderConfig{
			PathWidth:      DefaultPathWidth,
			BatchSize:      DefaultBatchSize,
			BlobBatchSize:  DefaultBlobBatchSize,
			QuickDragLimit: DefaultDragLimit,
			Gain:           DefaultGain,
			TickDelay:      DefaultTickDelay,
			Background:     "#ffffff",
			FPS:            DefaultFPS,
		},
		Colors: ColorConfig{
			Lower: [3]uint8{64, 200, 200},
			Upper: [3]uint8{128, 255, 255},
		},
		Animation: AnimationConfig{
			EvenAmplitude: 0.004,
			EvenPeriod:    19,
			OddAmplitude:  0.01,
			OddPeriod:     17,
			ClockMax:      360 * 19 * 17,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay applies the keys present in the file at path on top of cfg.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.MaxSeed < 2 {
		return &FieldError{"max_seed", "must be at least 2"}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return &FieldError{"window", "must have positive width and height"}
	}
	if c.Render.BatchSize <= 0 {
		return &FieldError{"render.batch_size", "must be positive"}
	}
	if c.Render.BlobBatchSize <= 0 {
		return &FieldError{"render.blob_batch_size", "must be positive"}
	}
	if c.Render.QuickDragLimit <= 0 {
		return &FieldError{"render.quick_drag_limit", "must be positive"}
	}
	if !(c.Render.PathWidth > 0) || math.IsInf(c.Render.PathWidth, 0) {
		return &FieldError{"render.path_width", "must be positive"}
	}
	if !(c.Render.Gain > 0) || math.IsInf(c.Render.Gain, 0) {
		return &FieldError{"render.gain", "must be positive"}
	}
	if c.Render.TickDelay < 0 {
		return &FieldError{"render.tick_delay", "must not be negative"}
	}
	if _, err := colorful.Hex(c.Render.Background); err != nil {
		return &FieldError{"render.background", "is not a #rrggbb color"}
	}
	if !c.ColorBox().Valid() {
		return &FieldError{"colors", "lower bound exceeds upper bound"}
	}
	if !(c.Animation.EvenPeriod > 0) || !(c.Animation.OddPeriod > 0) {
		return &FieldError{"animation", "periods must be positive"}
	}
	if c.Animation.ClockMax <= 0 {
		return &FieldError{"animation.clock_max", "must be positive"}
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: geometry: %w", ErrInvalidConfig, err)
	}
	if c.Geometry.StepLength <= 0 {
		return &FieldError{"geometry.step_length", "must be positive"}
	}
	return nil
}

// Params converts the geometry section, turning the heading into radians.
func (c *Config) Params() turtle.Params {
	g := c.Geometry
	return turtle.Params{
		Origin:       gg.Pt(g.OriginX, g.OriginY),
		StartHeading: g.StartHeadingDeg * math.Pi / 180,
		EvenDelta:    g.EvenAngle,
		OddDelta:     g.OddAngle,
		StepLength:   g.StepLength,
	}
}

func (c *Config) Settings() view.Settings {
	a := c.Animation
	return view.Settings{
		Gain: c.Render.Gain,
		Animation: view.Animation{
			EvenAmplitude: a.EvenAmplitude,
			EvenPeriod:    a.EvenPeriod,
			OddAmplitude:  a.OddAmplitude,
			OddPeriod:     a.OddPeriod,
			ClockMax:      a.ClockMax,
		},
	}
}

func (c *Config) Options() render.Options {
	opts := render.DefaultOptions()
	opts.Background = c.BackgroundColor()
	opts.PathWidth = c.Render.PathWidth
	opts.BatchSize = c.Render.BatchSize
	opts.BlobBatchSize = c.Render.BlobBatchSize
	opts.QuickDragLimit = c.Render.QuickDragLimit
	opts.TickDelay = c.Render.TickDelay
	return opts
}

func (c *Config) ColorBox() paths.ColorBox {
	return paths.ColorBox{Lower: c.Colors.Lower, Upper: c.Colors.Upper}
}

// BackgroundColor falls back to white for an unparsable value.
func (c *Config) BackgroundColor() colorful.Color {
	col, err := colorful.Hex(c.Render.Background)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

// Seed returns the color seed, drawing one from the clock when unset.
func (c *Config) Seed() int64 {
	if c.RandSeed != 0 {
		return c.RandSeed
	}
	return time.Now().UnixNano()
}
