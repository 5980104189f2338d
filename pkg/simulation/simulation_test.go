package simulation

import (
	"io"
	"strings"
	"testing"

	"github.com/iamjwc/driving-without-turning/internal/logger"
	"github.com/iamjwc/driving-without-turning/pkg/config"
	"github.com/iamjwc/driving-without-turning/pkg/environment"
)

func newTestSimulation(t *testing.T, mutate func(cfg *config.Config)) *Simulation {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Simulation.Seed = 2024
	cfg.Simulation.Strict = true
	if mutate != nil {
		mutate(cfg)
	}
	s, err := New(cfg, logger.NewWriterLogger("error", io.Discard))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestStepMovesCameraThenStreet(t *testing.T) {
	s := newTestSimulation(t, nil)
	for i := 0; i < 50; i++ {
		s.Step()
	}
	f := s.City.Frame()
	if f.CameraZ != s.Viewer.Position.Z() {
		t.Errorf("frame camera %v, viewer %v", f.CameraZ, s.Viewer.Position.Z())
	}
	if f.Tick != 50 || s.Ticks() != 50 {
		t.Errorf("ticks: frame %d, simulation %d", f.Tick, s.Ticks())
	}
}

func TestCommands(t *testing.T) {
	s := newTestSimulation(t, nil)
	snow := s.Env.Precip.SnowSpeed().Z()

	s.Apply(Faster)
	if s.Viewer.Increment.Z() <= 0.5 {
		t.Error("faster did not speed up")
	}
	if s.Env.Precip.SnowSpeed().Z() >= snow {
		t.Error("snow drift did not follow the speed change")
	}

	s.Apply(TimeForward)
	s.Apply(WeatherBack)
	if s.Env.Time != environment.Noon || s.Env.Weather != environment.Snowy {
		t.Errorf("environment = %v/%v, want noon/snowy", s.Env.Time, s.Env.Weather)
	}

	s.Apply(InclineUp)
	if s.Readout().Incline <= 0 {
		t.Errorf("incline readout = %v, want uphill", s.Readout().Incline)
	}
}

func TestStoppingHoldsTheStreet(t *testing.T) {
	s := newTestSimulation(t, nil)
	for i := 0; i < 10; i++ {
		s.Apply(Slower)
	}
	z := s.Viewer.Position.Z()
	for i := 0; i < 100; i++ {
		s.Step()
	}
	if s.Viewer.Position.Z() != z {
		t.Error("stopped viewer moved")
	}
	if st := s.City.Stats(); st.Violations != 0 {
		t.Errorf("violations while stopped: %d", st.Violations)
	}
}

func TestReadoutString(t *testing.T) {
	s := newTestSimulation(t, nil)
	got := s.Readout().String()
	for _, want := range []string{"Speed 6.8 mph", "Distance 0.00 mi", "Incline +0.0%", "dawn", "sunny"} {
		if !strings.Contains(got, want) {
			t.Errorf("readout %q missing %q", got, want)
		}
	}
}

func TestNewRejectsUnknownWeather(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Environment.Weather = "hail"
	if _, err := New(cfg, logger.NewWriterLogger("error", io.Discard)); err == nil {
		t.Error("expected an error for unknown weather")
	}
}

func TestZeroSeedIsReplaced(t *testing.T) {
	s := newTestSimulation(t, func(cfg *config.Config) { cfg.Simulation.Seed = 0 })
	if s.Seed() == 0 {
		t.Error("zero seed kept")
	}
}
