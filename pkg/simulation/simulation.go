// Package simulation advances the viewer, the environment and the street
// together, one fixed tick at a time. It has no window or audio and is
// shared by the interactive engine and the headless command.
package simulation

import (
	"fmt"
	"time"

	"github.com/iamjwc/driving-without-turning/internal/logger"
	"github.com/iamjwc/driving-without-turning/pkg/config"
	"github.com/iamjwc/driving-without-turning/pkg/environment"
	"github.com/iamjwc/driving-without-turning/pkg/street"
	"github.com/iamjwc/driving-without-turning/pkg/viewer"
)

// Command is a user adjustment applied between ticks
type Command int

const (
	Faster Command = iota
	Slower
	InclineDown
	InclineUp
	TimeForward
	TimeBack
	WeatherForward
	WeatherBack
)

func (c Command) String() string {
	switch c {
	case Faster:
		return "faster"
	case Slower:
		return "slower"
	case InclineDown:
		return "incline down"
	case InclineUp:
		return "incline up"
	case TimeForward:
		return "time forward"
	case TimeBack:
		return "time back"
	case WeatherForward:
		return "weather forward"
	case WeatherBack:
		return "weather back"
	default:
		return "unknown"
	}
}

// Simulation owns every piece of per-session state
type Simulation struct {
	Viewer *viewer.Viewer
	Env    *environment.Environment
	City   *street.City

	log   *logger.Logger
	seed  uint64
	ticks uint64
}

// New builds a simulation from the configuration. A zero seed is replaced
// by one taken from the clock.
func New(cfg *config.Config, log *logger.Logger) (*Simulation, error) {
	tod, err := environment.ParseTimeOfDay(cfg.Environment.TimeOfDay)
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	weather, err := environment.ParseWeather(cfg.Environment.Weather)
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Infof("world seed %d", seed)

	v := viewer.New(cfg.Viewer, cfg.Simulation.TickRate)
	city, err := street.NewCity(street.Options{
		Street: cfg.Street,
		Seed:   seed,
		Strict: cfg.Simulation.Strict,
	}, v.Position.Z(), log.Named("street"))
	if err != nil {
		return nil, fmt.Errorf("failed to build street: %w", err)
	}

	return &Simulation{
		Viewer: v,
		Env:    environment.New(tod, weather),
		City:   city,
		log:    log,
		seed:   seed,
	}, nil
}

// Seed is the world seed in use
func (s *Simulation) Seed() uint64 { return s.seed }

// Ticks counts completed steps
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Step runs one tick: the camera moves first, then the weather drifts and
// the street catches up with the camera.
func (s *Simulation) Step() {
	s.Viewer.Advance()
	s.Env.Tick()
	s.City.Tick(s.Viewer.Position.Z())
	s.ticks++
}

// Apply performs a user command
func (s *Simulation) Apply(cmd Command) {
	switch cmd {
	case Faster:
		if s.Viewer.Accelerate() {
			s.Env.Precip.SpeedChanged(true)
		}
	case Slower:
		if s.Viewer.Decelerate() {
			s.Env.Precip.SpeedChanged(false)
		}
	case InclineDown:
		s.Viewer.InclineDown()
	case InclineUp:
		s.Viewer.InclineUp()
	case TimeForward:
		s.Env.CycleTime(true)
	case TimeBack:
		s.Env.CycleTime(false)
	case WeatherForward:
		s.Env.CycleWeather(true)
	case WeatherBack:
		s.Env.CycleWeather(false)
	}
	s.log.Debugf("%s: %s", cmd, s.Readout())
}

// Readout is the display panel content
type Readout struct {
	viewer.Readout
	Time    environment.TimeOfDay
	Weather environment.Weather
}

func (s *Simulation) Readout() Readout {
	return Readout{Readout: s.Viewer.Readout(), Time: s.Env.Time, Weather: s.Env.Weather}
}

func (r Readout) String() string {
	return fmt.Sprintf("Speed %.1f mph | Distance %.2f mi | Incline %+.1f%% | %s | %s",
		r.Speed, r.Distance, r.Incline, r.Time, r.Weather)
}
