// Package environment holds the time of day and weather of the scene and
// everything derived from them: fog, lamp state, colours and precipitation.
package environment

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/iamjwc/driving-without-turning/internal/mathx"
)

// TimeOfDay cycles dawn, noon, dusk
type TimeOfDay int

const (
	Dawn TimeOfDay = iota
	Noon
	Dusk
	timesOfDay
)

var timeNames = [...]string{"dawn", "noon", "dusk"}

func (t TimeOfDay) String() string {
	if t < 0 || t >= timesOfDay {
		return "unknown"
	}
	return timeNames[t]
}

// Next moves forwards, wrapping dusk to dawn
func (t TimeOfDay) Next() TimeOfDay { return (t + 1) % timesOfDay }

// Prev moves backwards, wrapping dawn to dusk
func (t TimeOfDay) Prev() TimeOfDay { return (t + timesOfDay - 1) % timesOfDay }

// ParseTimeOfDay accepts the names printed by String
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for i, name := range timeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return TimeOfDay(i), nil
		}
	}
	return Dawn, fmt.Errorf("unknown time of day %q", s)
}

// Weather cycles sunny, rainy, snowy
type Weather int

const (
	Sunny Weather = iota
	Rainy
	Snowy
	weathers
)

var weatherNames = [...]string{"sunny", "rainy", "snowy"}

func (w Weather) String() string {
	if w < 0 || w >= weathers {
		return "unknown"
	}
	return weatherNames[w]
}

func (w Weather) Next() Weather { return (w + 1) % weathers }

func (w Weather) Prev() Weather { return (w + weathers - 1) % weathers }

// ParseWeather accepts the names printed by String
func ParseWeather(s string) (Weather, error) {
	for i, name := range weatherNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Weather(i), nil
		}
	}
	return Sunny, fmt.Errorf("unknown weather %q", s)
}

// Fog is an exponential fog setting
type Fog struct {
	Color   mgl32.Vec4
	Density float32
}

var (
	lightFog = mgl32.Vec4{0.9, 0.9, 0.9, 1.0}
	darkFog  = mgl32.Vec4{0.6, 0.75, 0.85, 0.9}
)

// Environment is the current scene condition plus its precipitation field.
type Environment struct {
	Time    TimeOfDay
	Weather Weather
	Precip  *Precipitation

	fog Fog
}

// New builds an environment. Fog keeps the colour of the last time of day
// that had one, so noon keeps dawn's or dusk's colour at zero density.
func New(t TimeOfDay, w Weather) *Environment {
	e := &Environment{Time: t, Weather: w, Precip: NewPrecipitation(), fog: Fog{Color: lightFog}}
	e.updateFog()
	return e
}

// CycleTime moves the time of day forwards or backwards
func (e *Environment) CycleTime(forward bool) {
	if forward {
		e.Time = e.Time.Next()
	} else {
		e.Time = e.Time.Prev()
	}
	e.updateFog()
}

// CycleWeather moves through sunny, rainy, snowy
func (e *Environment) CycleWeather(forward bool) {
	if forward {
		e.Weather = e.Weather.Next()
	} else {
		e.Weather = e.Weather.Prev()
	}
}

func (e *Environment) updateFog() {
	switch e.Time {
	case Dawn:
		e.fog = Fog{Color: lightFog, Density: 0.05}
	case Noon:
		e.fog.Density = 0
	case Dusk:
		e.fog = Fog{Color: darkFog, Density: 0.025}
	}
}

// Tick drifts the precipitation by one step
func (e *Environment) Tick() {
	e.Precip.Tick(e.Weather)
}

func (e *Environment) Fog() Fog { return e.fog }

// ClearColor is the sky behind everything
func (e *Environment) ClearColor() mgl32.Vec4 {
	return mgl32.Vec4{0.2, 0.7, 0.9, 0}
}

// FarPlaneColor is the colour of the wall closing the far end of the street
func (e *Environment) FarPlaneColor() mgl32.Vec3 {
	switch e.Time {
	case Noon:
		return mgl32.Vec3{0.7, 1.0, 1.0}
	case Dusk:
		return mgl32.Vec3{0, 0.1, 0.1}
	default:
		return mgl32.Vec3{0, 0.6, 0.6}
	}
}

// LampsOn is true except at noon
func (e *Environment) LampsOn() bool {
	return e.Time != Noon
}

// LampColor is the emissive colour of a streetlight lamp
func (e *Environment) LampColor() mgl32.Vec3 {
	if e.LampsOn() {
		return mgl32.Vec3{1.0, 1.0, 0.1}
	}
	return mgl32.Vec3{0.5, 0.5, 0.1}
}

// BuildingColor lifts a building's base colour in daylight
func (e *Environment) BuildingColor(base [3]float64) mgl32.Vec3 {
	lift := float32(0)
	if e.Time == Noon {
		lift = 0.4
	}
	return mgl32.Vec3{float32(base[0]) + lift, float32(base[1]) + lift, float32(base[2]) + lift}
}

// WindowColor draws one window colour: warm and lit at dusk, a dim blue
// otherwise.
func (e *Environment) WindowColor(rng *mathx.Rand) mgl32.Vec3 {
	if e.Time == Dusk {
		r := rng.Next(0.86, 0.94)
		return mgl32.Vec3{float32(r), float32(rng.Next(r-0.02, r+0.02)), float32(rng.Next(r-0.02, r+0.02))}
	}
	b := rng.Next(0.4, 0.5)
	g := rng.Next(b-0.05, b+0.05)
	r := rng.Next(b-0.05, b+0.05)
	return mgl32.Vec3{float32(r), float32(g), float32(b)}
}

// PrecipColor is the colour of raindrops or snowflakes
func (e *Environment) PrecipColor() mgl32.Vec3 {
	if e.Weather == Snowy {
		return mgl32.Vec3{1, 1, 1}
	}
	switch e.Time {
	case Noon:
		return mgl32.Vec3{0.8, 0.8, 0.9}
	case Dusk:
		return mgl32.Vec3{0.6, 0.6, 0.6}
	default:
		return mgl32.Vec3{0.7, 0.7, 0.8}
	}
}

// Particles returns the precipitation around cameraZ, reusing dst
func (e *Environment) Particles(cameraZ float64, dst []mgl32.Vec3) []mgl32.Vec3 {
	return e.Precip.Particles(e.Weather, e.Time, cameraZ, dst)
}

// Intensity is a 0..1 loudness for ambient sound
func (e *Environment) Intensity() float64 {
	switch e.Weather {
	case Rainy:
		if e.Time == Dusk {
			return 1
		}
		return 0.7
	case Snowy:
		return 0.25
	default:
		return 0.1
	}
}
