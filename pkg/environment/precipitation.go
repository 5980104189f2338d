package environment

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iamjwc/driving-without-turning/internal/mathx"
)

// Corridor in front of the viewer that precipitation fills
const (
	XMin = -3.5
	XMax = 3.5
	YMin = -3.0
	YMax = 3.0

	snowDepth = 10.0 // flakes fill cameraZ-10 .. cameraZ+10
	rainDepth = 5.0  // drops fill cameraZ .. cameraZ+5

	snowSeed  = 99
	rainSeed  = 13
	snowCount = 10000
	rainCount = 10000
	duskRain  = 20000

	speedDrift = 0.03
	windScale  = 0.3
	windRate   = 0.05
)

// Precipitation is a fixed field of particles. Each particle keeps a base
// offset; a shared drift is added every tick and positions wrap inside the
// corridor, so the same particles fall forever.
type Precipitation struct {
	drift     mgl64.Vec3
	snowSpeed mgl64.Vec3
	rainSpeed mgl64.Vec3
	snow      []mgl64.Vec3
	rain      []mgl64.Vec3
	ticks     int64
}

func NewPrecipitation() *Precipitation {
	return &Precipitation{
		drift:     mgl64.Vec3{0.01, -0.01, 0},
		snowSpeed: mgl64.Vec3{0.01, -0.1, -0.2},
		rainSpeed: mgl64.Vec3{0.01, -0.05, 0},
		snow:      field(snowSeed, snowCount, -snowDepth, snowDepth),
		rain:      field(rainSeed, duskRain, 0, rainDepth),
	}
}

func field(seed uint64, n int, zLo, zHi float64) []mgl64.Vec3 {
	rng := mathx.NewRand(seed)
	out := make([]mgl64.Vec3, n)
	for i := range out {
		out[i] = mgl64.Vec3{rng.Next(XMin, XMax), rng.Next(YMin, YMax), rng.Next(zLo, zHi)}
	}
	return out
}

// Tick adds one step of fall for the active weather
func (p *Precipitation) Tick(w Weather) {
	p.ticks++
	switch w {
	case Snowy:
		p.drift = p.drift.Add(p.snowSpeed)
	case Rainy:
		p.drift = p.drift.Add(p.rainSpeed)
	default:
		return
	}
	// Whole spans only; keeps the drift small over long sessions
	p.drift = mgl64.Vec3{
		mathx.Wrap(p.drift.X(), 0, XMax-XMin),
		mathx.Wrap(p.drift.Y(), 0, YMax-YMin),
		mathx.Wrap(p.drift.Z(), 0, 2*snowDepth),
	}
}

// SpeedChanged makes snow stream towards a faster viewer
func (p *Precipitation) SpeedChanged(faster bool) {
	dz := speedDrift
	if faster {
		dz = -speedDrift
	}
	p.snowSpeed = p.snowSpeed.Add(mgl64.Vec3{0, 0, dz})
}

// SnowSpeed is the per-tick drift applied while snowing
func (p *Precipitation) SnowSpeed() mgl64.Vec3 { return p.snowSpeed }

// Count is the number of particles drawn for a condition
func Count(w Weather, t TimeOfDay) int {
	switch w {
	case Snowy:
		return snowCount
	case Rainy:
		if t == Dusk {
			return duskRain
		}
		return rainCount
	default:
		return 0
	}
}

// Particles positions the field for drawing, appending to dst[:0]
func (p *Precipitation) Particles(w Weather, t TimeOfDay, cameraZ float64, dst []mgl32.Vec3) []mgl32.Vec3 {
	dst = dst[:0]
	n := Count(w, t)
	if n == 0 {
		return dst
	}

	base, zLo, zHi := p.snow, -snowDepth, snowDepth
	if w == Rainy {
		base, zLo, zHi = p.rain, 0.0, rainDepth
	}
	wind := windScale * mathx.Perlin1D(float64(p.ticks)*windRate, int64(w))

	for _, b := range base[:n] {
		x := mathx.Wrap(b.X()+p.drift.X()+wind, XMin, XMax)
		y := mathx.Wrap(b.Y()+p.drift.Y(), YMin, YMax)
		z := cameraZ + mathx.Wrap(b.Z()+p.drift.Z(), zLo, zHi)
		dst = append(dst, mgl32.Vec3{float32(x), float32(y), float32(z)})
	}
	return dst
}
