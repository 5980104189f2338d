// Package viewer moves the first-person camera down the street.
package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/iamjwc/driving-without-turning/pkg/config"
)

// inclineReadoutScale converts the look-at offset into the displayed grade
const inclineReadoutScale = -66.7

// Viewer is the camera. It only moves along +z; the incline tilts the
// look-at point and lowers the eye when looking downhill.
type Viewer struct {
	Position  mgl64.Vec3
	Increment mgl64.Vec3 // added to Position once per tick

	cfg          config.ViewerConfig
	tickSeconds  float64
	inclineSteps int
	maxSteps     int
	baseY        float64
	distance     float64
}

// Readout is what the display panel shows about the viewer's motion
type Readout struct {
	Speed    float64 // mph
	Distance float64 // miles
	Incline  float64 // percent grade
}

// New places a viewer at cfg.StartZ moving at cfg.Speed per tick
func New(cfg config.ViewerConfig, tickRate int) *Viewer {
	if tickRate <= 0 {
		tickRate = 10
	}
	maxSteps := 0
	if cfg.InclineStep > 0 {
		maxSteps = int(math.Round(cfg.MaxIncline / cfg.InclineStep))
	}
	return &Viewer{
		Position:    mgl64.Vec3{0, 0, cfg.StartZ},
		Increment:   mgl64.Vec3{0, 0, cfg.Speed},
		cfg:         cfg,
		tickSeconds: 1 / float64(tickRate),
		maxSteps:    maxSteps,
	}
}

// Advance moves the viewer by one tick of its increment
func (v *Viewer) Advance() {
	v.Position = v.Position.Add(v.Increment)
	v.distance += v.Speed() * v.tickSeconds / 3600
}

// Accelerate raises the per-tick increment up to the configured maximum.
// It reports whether the speed changed.
func (v *Viewer) Accelerate() bool {
	return v.setIncrement(v.Increment.Z() + v.cfg.SpeedDelta)
}

// Decelerate lowers the per-tick increment, never below standing still.
func (v *Viewer) Decelerate() bool {
	return v.setIncrement(v.Increment.Z() - v.cfg.SpeedDelta)
}

func (v *Viewer) setIncrement(z float64) bool {
	z = math.Max(0, math.Min(z, v.cfg.MaxSpeed))
	if z == v.Increment.Z() {
		return false
	}
	v.Increment = mgl64.Vec3{v.Increment.X(), v.Increment.Y(), z}
	return true
}

// InclineDown tilts the view as if the road drops away ahead
func (v *Viewer) InclineDown() {
	if v.inclineSteps < v.maxSteps {
		v.inclineSteps++
		v.updateEye()
	}
}

// InclineUp tilts the view as if the road climbs ahead
func (v *Viewer) InclineUp() {
	if v.inclineSteps > -v.maxSteps {
		v.inclineSteps--
		v.updateEye()
	}
}

// The eye sinks one drop per step of downhill tilt and sits at its base
// height otherwise.
func (v *Viewer) updateEye() {
	drop := float64(max(v.inclineSteps, 0)) * v.cfg.EyeDrop
	v.Position = mgl64.Vec3{v.Position.X(), v.baseY - drop, v.Position.Z()}
}

// LookAtYDelta is the vertical offset of the look-at point one unit ahead
func (v *Viewer) LookAtYDelta() float64 {
	return float64(v.inclineSteps) * v.cfg.InclineStep
}

// Target is the point the camera looks at
func (v *Viewer) Target() mgl64.Vec3 {
	return v.Position.Add(mgl64.Vec3{0, v.LookAtYDelta(), 1})
}

// Speed in miles per hour
func (v *Viewer) Speed() float64 {
	return v.cfg.SpeedScale * v.Increment.Z()
}

// Distance travelled in miles
func (v *Viewer) Distance() float64 {
	return v.distance
}

// Incline as a percent grade, positive uphill
func (v *Viewer) Incline() float64 {
	if v.inclineSteps == 0 {
		return 0
	}
	return inclineReadoutScale * v.LookAtYDelta()
}

func (v *Viewer) Readout() Readout {
	return Readout{Speed: v.Speed(), Distance: v.Distance(), Incline: v.Incline()}
}
