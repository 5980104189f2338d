package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config represents the main configuration
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Street      StreetConfig      `yaml:"street"`
	Viewer      ViewerConfig      `yaml:"viewer"`
	Environment EnvironmentConfig `yaml:"environment"`
	Audio       AudioConfig       `yaml:"audio"`
	Log         LogConfig         `yaml:"log"`
}

// GraphicsConfig contains window and projection settings
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FrameRate  int     `yaml:"framerate"`
	FOV        float64 `yaml:"fov"`       // vertical, degrees
	FarPlane   float64 `yaml:"far_plane"` // world units
}

// SimulationConfig controls the fixed-rate tick
type SimulationConfig struct {
	TickRate int    `yaml:"tick_rate"` // ticks per second
	Seed     uint64 `yaml:"seed"`      // 0 means derive from the clock
	Strict   bool   `yaml:"strict"`    // panic on invariant violations
}

// StreetConfig describes the recycled street and its pedestrians
type StreetConfig struct {
	BlockLength          float64 `yaml:"block_length"`
	BlockCount           int     `yaml:"block_count"`
	Threshold            float64 `yaml:"threshold"`
	MinGapWidth          float64 `yaml:"min_gap_width"`
	PedestriansPerSide   int     `yaml:"pedestrians_per_side"`
	PedestrianStep       float64 `yaml:"pedestrian_step"`
	MaxPlacementAttempts int     `yaml:"max_placement_attempts"`
	ReplaceOnShift       bool    `yaml:"replace_on_shift"`
}

// ViewerConfig contains the camera motion limits
type ViewerConfig struct {
	StartZ      float64 `yaml:"start_z"`
	Speed       float64 `yaml:"speed"` // z advance per tick
	SpeedDelta  float64 `yaml:"speed_delta"`
	MaxSpeed    float64 `yaml:"max_speed"`
	SpeedScale  float64 `yaml:"speed_scale"` // tick advance to mph
	InclineStep float64 `yaml:"incline_step"`
	MaxIncline  float64 `yaml:"max_incline"`
	EyeDrop     float64 `yaml:"eye_drop"`
}

// EnvironmentConfig holds the starting scene conditions
type EnvironmentConfig struct {
	TimeOfDay string `yaml:"time_of_day"` // dawn, noon, dusk
	Weather   string `yaml:"weather"`     // sunny, rainy, snowy
}

// AudioConfig contains audio-related configuration
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// LogConfig selects the log level and optional log file
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// WindowLength is the span of z covered by one pass over the blocks
func (s StreetConfig) WindowLength() float64 {
	return s.BlockLength * float64(s.BlockCount)
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:     700,
			Height:    600,
			VSync:     true,
			FrameRate: 60,
			FOV:       60,
			FarPlane:  300,
		},
		Simulation: SimulationConfig{
			TickRate: 10,
		},
		Street: StreetConfig{
			BlockLength:          20,
			BlockCount:           10,
			Threshold:            1,
			MinGapWidth:          10,
			PedestriansPerSide:   5,
			PedestrianStep:       0.5,
			MaxPlacementAttempts: 64,
		},
		Viewer: ViewerConfig{
			StartZ:      -5,
			Speed:       0.5,
			SpeedDelta:  0.075,
			MaxSpeed:    2,
			SpeedScale:  13.7,
			InclineStep: 0.03,
			MaxIncline:  0.3,
			EyeDrop:     0.12,
		},
		Environment: EnvironmentConfig{
			TimeOfDay: "dawn",
			Weather:   "sunny",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the values the simulation cannot run without
func (c *Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0, "graphics size must be positive")
	check(c.Graphics.FOV > 0 && c.Graphics.FOV < 180, "graphics.fov must be in (0, 180)")
	check(c.Simulation.TickRate > 0, "simulation.tick_rate must be positive")
	check(c.Street.BlockLength > 0, "street.block_length must be positive")
	check(c.Street.BlockCount >= 2, "street.block_count must be at least 2")
	check(c.Street.Threshold >= 0, "street.threshold must not be negative")
	check(c.Street.MinGapWidth >= 0, "street.min_gap_width must not be negative")
	check(c.Street.PedestriansPerSide >= 0, "street.pedestrians_per_side must not be negative")
	check(c.Street.PedestrianStep >= 0, "street.pedestrian_step must not be negative")
	check(c.Street.MaxPlacementAttempts > 0, "street.max_placement_attempts must be positive")
	check(c.Viewer.MaxSpeed >= 0, "viewer.max_speed must not be negative")
	check(c.Viewer.Speed >= 0 && c.Viewer.Speed <= c.Viewer.MaxSpeed, "viewer.speed must be within [0, max_speed]")
	check(c.Viewer.MaxSpeed < c.Street.WindowLength(), "viewer.max_speed must be shorter than one window per tick")
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0, 1]")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// LoadConfig loads the configuration from a file. A missing file is not an
// error: defaults are returned together with a nil error and found=false.
func LoadConfig(filePath string) (cfg *Config, found bool, err error) {
	cfg = DefaultConfig()

	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, fmt.Errorf("error reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, true, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, true, err
	}
	return cfg, true, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
