// Package config provides configuration loading and access for the scene.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Scene     SceneConfig     `yaml:"scene"`
	Orbit     OrbitConfig     `yaml:"orbit"`
	Cursor    CursorConfig    `yaml:"cursor"`
	Nav       NavConfig       `yaml:"nav"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig holds particle field parameters. Count is fixed once the field
// is generated.
type FieldConfig struct {
	Count     int     `yaml:"count"`
	Seed      int64   `yaml:"seed"` // 0 = time-based
	PointSize float64 `yaml:"point_size"`
	Opacity   float64 `yaml:"opacity"`
}

// SceneConfig holds the static scene dressing around the field.
type SceneConfig struct {
	Background string       `yaml:"background"`
	Camera     CameraConfig `yaml:"camera"`
	Fog        FogConfig    `yaml:"fog"`
	Glow       GlowConfig   `yaml:"glow"`
}

// CameraConfig holds the perspective camera placement.
type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	FOV      float64    `yaml:"fov"` // vertical, degrees
}

// FogConfig holds linear fog distances.
type FogConfig struct {
	Color string  `yaml:"color"`
	Near  float64 `yaml:"near"`
	Far   float64 `yaml:"far"`
}

// GlowConfig holds the additive backdrop plane.
type GlowConfig struct {
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
	Z       float64 `yaml:"z"`
	Size    float64 `yaml:"size"`
}

// OrbitConfig holds orbit camera controls.
type OrbitConfig struct {
	Enabled         bool    `yaml:"enabled"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"` // 2.0 = one turn per 30s at 60fps
	Damping         float64 `yaml:"damping"`
	MinPolarDeg     float64 `yaml:"min_polar_deg"`
	MaxPolarDeg     float64 `yaml:"max_polar_deg"`
	DragSpeed       float64 `yaml:"drag_speed"` // radians per pixel
}

// CursorConfig holds custom cursor and trail parameters.
type CursorConfig struct {
	Size          float64 `yaml:"size"`
	TrailLength   int     `yaml:"trail_length"`
	TrailSize     float64 `yaml:"trail_size"`
	TrailDelay    float64 `yaml:"trail_delay"`    // seconds between followers
	TrailDuration float64 `yaml:"trail_duration"` // seconds for a follower to settle
}

// NavItemConfig is one header link.
type NavItemConfig struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// NavConfig holds the header navigation and its animation springs.
type NavConfig struct {
	Items             []NavItemConfig `yaml:"items"`
	Height            int             `yaml:"height"`
	ItemSpacing       int             `yaml:"item_spacing"`
	FontSize          int             `yaml:"font_size"`
	EntranceStiffness float64         `yaml:"entrance_stiffness"`
	EntranceDamping   float64         `yaml:"entrance_damping"`
	ItemStagger       float64         `yaml:"item_stagger"`
	GlowStiffness     float64         `yaml:"glow_stiffness"`
	GlowDamping       float64         `yaml:"glow_damping"`
	SparksPerItem     int             `yaml:"sparks_per_item"`
	SparkSpread       float64         `yaml:"spark_spread"`
	SparkPeriod       float64         `yaml:"spark_period"`
	SparkStagger      float64         `yaml:"spark_stagger"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds of scene time per stats record
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// RGB is a parsed colour with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT         float64 // 1 / Screen.TargetFPS
	FOVRadians float64
	MinPolar   float64 // radians
	MaxPolar   float64 // radians
	Background RGB
	FogColor   RGB
	GlowColor  RGB
	NavIndex   map[string]int // href -> item index
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the config and recomputes derived values. Call it again
// after changing fields programmatically.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	return c.computeDerived()
}

// Validate rejects configurations the scene cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Field.Count <= 0 {
		errs = append(errs, fmt.Errorf("field.count must be positive, got %d", c.Field.Count))
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS))
	}
	if c.Scene.Fog.Far <= c.Scene.Fog.Near {
		errs = append(errs, fmt.Errorf("scene.fog.far (%v) must exceed near (%v)", c.Scene.Fog.Far, c.Scene.Fog.Near))
	}
	if c.Scene.Camera.FOV <= 0 || c.Scene.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("scene.camera.fov must be in (0, 180), got %v", c.Scene.Camera.FOV))
	}
	if c.Orbit.MinPolarDeg > c.Orbit.MaxPolarDeg {
		errs = append(errs, fmt.Errorf("orbit.min_polar_deg (%v) exceeds max_polar_deg (%v)", c.Orbit.MinPolarDeg, c.Orbit.MaxPolarDeg))
	}
	if c.Cursor.TrailLength < 0 {
		errs = append(errs, fmt.Errorf("cursor.trail_length must not be negative, got %d", c.Cursor.TrailLength))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)
	c.Derived.FOVRadians = c.Scene.Camera.FOV * math.Pi / 180
	c.Derived.MinPolar = c.Orbit.MinPolarDeg * math.Pi / 180
	c.Derived.MaxPolar = c.Orbit.MaxPolarDeg * math.Pi / 180

	var err error
	if c.Derived.Background, err = ParseColor(c.Scene.Background); err != nil {
		return fmt.Errorf("scene.background: %w", err)
	}
	if c.Derived.FogColor, err = ParseColor(c.Scene.Fog.Color); err != nil {
		return fmt.Errorf("scene.fog.color: %w", err)
	}
	if c.Derived.GlowColor, err = ParseColor(c.Scene.Glow.Color); err != nil {
		return fmt.Errorf("scene.glow.color: %w", err)
	}

	c.Derived.NavIndex = make(map[string]int, len(c.Nav.Items))
	for i, item := range c.Nav.Items {
		c.Derived.NavIndex[item.Href] = i
	}
	return nil
}

// ParseColor parses a "#rrggbb" string.
func ParseColor(hex string) (RGB, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("parsing colour %q: %w", hex, err)
	}
	return RGB{R: col.R, G: col.G, B: col.B}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
