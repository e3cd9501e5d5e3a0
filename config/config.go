// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen   ScreenConfig   `yaml:"screen"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Boundary BoundaryConfig `yaml:"boundary"`
	Portal   PortalConfig   `yaml:"portal"`
	Camera   CameraConfig   `yaml:"camera"`
	Zoom     ZoomConfig     `yaml:"zoom"`
	Spawn    SpawnConfig    `yaml:"spawn"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT       float64 `yaml:"dt"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// BoundaryConfig sizes the play volume as a grid of cubic cells.
type BoundaryConfig struct {
	CellCountX int     `yaml:"cell_count_x"`
	CellCountY int     `yaml:"cell_count_y"`
	CellCountZ int     `yaml:"cell_count_z"`
	CellScalar float64 `yaml:"cell_scalar"` // edge length of one cell in world units
}

// PortalConfig holds portal visual tunables.
type PortalConfig struct {
	Scalar                float64 `yaml:"scalar"`                  // radius = AABB max dimension x this
	Smallest              float64 `yaml:"smallest"`                // floor for the pre-scalar radius
	MinimumRadius         float64 `yaml:"minimum_radius"`          // markers below this are removed
	DistanceApproach      float64 `yaml:"distance_approach"`       // fraction of the smallest boundary dimension
	DistanceShrink        float64 `yaml:"distance_shrink"`         // fraction, start of the shrink zone
	FadeoutDuration       float64 `yaml:"fadeout_duration"`        // seconds
	MovementSmoothing     float64 `yaml:"movement_smoothing"`      // per-frame lerp factor
	DirectionChangeFactor float64 `yaml:"direction_change_factor"` // normal dot below this skips smoothing
	Resolution            int     `yaml:"resolution"`              // segments per full circle
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	FOVDegrees     float64 `yaml:"fov_degrees"`
	PanSmoothness  float64 `yaml:"pan_smoothness"`
	ZoomSmoothness float64 `yaml:"zoom_smoothness"`
	StartYaw       float64 `yaml:"start_yaw"`   // radians
	StartPitch     float64 `yaml:"start_pitch"` // radians
}

// ZoomConfig holds zoom-to-fit solver settings.
type ZoomConfig struct {
	Margin           float64 `yaml:"margin"`            // screen fraction kept clear around the boundary
	MarginTolerance  float64 `yaml:"margin_tolerance"`  // fit tolerance
	BalanceTolerance float64 `yaml:"balance_tolerance"` // opposite-margin tolerance
	FittingRate      float64 `yaml:"fitting_rate"`
	BalancingRate    float64 `yaml:"balancing_rate"`
	MaxIterations    int     `yaml:"max_iterations"`
	StallEpsilon     float64 `yaml:"stall_epsilon"`
}

// SpawnConfig holds actor spawning parameters.
type SpawnConfig struct {
	Asteroids      int     `yaml:"asteroids"`
	DerelictChance float64 `yaml:"derelict_chance"` // probability an asteroid spawns as a wreck
	MinSpeed       float64 `yaml:"min_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	MinSize        float64 `yaml:"min_size"` // AABB edge, world units
	MaxSize        float64 `yaml:"max_size"`
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	DT32       float32 // Physics.DT as float32
	ScreenW32  float32 // Screen.Width as float32
	ScreenH32  float32 // Screen.Height as float32
	Aspect     float32 // Screen width / height
	FOVRadians float32 // Camera.FOVDegrees in radians
	ExtentX    float32 // Boundary.CellCountX * CellScalar
	ExtentY    float32
	ExtentZ    float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
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
		// Unmarshal into the same struct; only fields present in the file
		// are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	if c.Screen.Height > 0 {
		c.Derived.Aspect = float32(c.Screen.Width) / float32(c.Screen.Height)
	}
	c.Derived.FOVRadians = float32(c.Camera.FOVDegrees * math.Pi / 180)
	c.Derived.ExtentX = float32(float64(c.Boundary.CellCountX) * c.Boundary.CellScalar)
	c.Derived.ExtentY = float32(float64(c.Boundary.CellCountY) * c.Boundary.CellScalar)
	c.Derived.ExtentZ = float32(float64(c.Boundary.CellCountZ) * c.Boundary.CellScalar)
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
