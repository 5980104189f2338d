// Package animation provides step-based tweens and the walking figure
// drawn for each pedestrian.
package animation

// FramesPerSwing is the number of ticks a limb takes to cross its range
const FramesPerSwing = 15

// Limb identifies one animated joint of a figure
type Limb int

const (
	UpperLeftArm Limb = iota
	UpperRightArm
	LowerLeftArm
	LowerRightArm
	UpperTorso
	Pelvis
	UpperLeftLeg
	UpperRightLeg
	LowerLeftLeg
	LowerRightLeg
	Head
	LeftFoot
	RightFoot
	limbCount
)

// Swing is the angle range of a limb, in degrees
type Swing struct {
	Min, Max float64
}

var (
	upperArmSwing = Swing{-8, 8}
	lowerArmSwing = Swing{1, 15}
	torsoSwing    = Swing{-2.5, 2.5}
	pelvisSwing   = Swing{-2.5, 2.5}
	upperLegSwing = Swing{-15, 15}
	lowerLegSwing = Swing{-25, 0}
	headSwing     = Swing{-45, 45}
	footSwing     = Swing{-25, 25}
)

// Pose is a copy of every limb angle at one instant
type Pose struct {
	Angles [limbCount]float64
	Facing int // +1 walking towards +z, -1 towards -z
}

// Angle returns the angle of one limb in degrees
func (p Pose) Angle(l Limb) float64 {
	return p.Angles[l]
}

type joint struct {
	swing Swing
	tween *Tween
}

// Figure animates a walking person. Opposite limbs start towards opposite
// ends of their swing so the gait alternates.
type Figure struct {
	joints [limbCount]joint
	facing int
	ease   Easing
}

// NewFigure builds a figure facing direction (+1 or -1)
func NewFigure(direction int) *Figure {
	f := &Figure{facing: facing(direction), ease: QuadInOut}

	towards := func(l Limb, s Swing, end float64, n int) {
		f.joints[l] = joint{swing: s, tween: NewTween(0, end, n)}
	}
	towards(UpperLeftArm, upperArmSwing, upperArmSwing.Max, FramesPerSwing)
	towards(UpperRightArm, upperArmSwing, upperArmSwing.Min, FramesPerSwing)
	towards(LowerLeftArm, lowerArmSwing, lowerArmSwing.Max, FramesPerSwing)
	towards(LowerRightArm, lowerArmSwing, lowerArmSwing.Min, FramesPerSwing)
	towards(UpperTorso, torsoSwing, torsoSwing.Max, FramesPerSwing)
	towards(Pelvis, pelvisSwing, pelvisSwing.Min, FramesPerSwing)
	towards(UpperLeftLeg, upperLegSwing, upperLegSwing.Min, FramesPerSwing)
	towards(UpperRightLeg, upperLegSwing, upperLegSwing.Max, FramesPerSwing)
	towards(LowerLeftLeg, lowerLegSwing, lowerLegSwing.Min, FramesPerSwing)
	towards(LowerRightLeg, lowerLegSwing, lowerLegSwing.Max, FramesPerSwing)
	towards(Head, headSwing, headSwing.Max, FramesPerSwing*2)
	towards(LeftFoot, footSwing, footSwing.Min, FramesPerSwing)
	towards(RightFoot, footSwing, footSwing.Max, FramesPerSwing)
	return f
}

func facing(direction int) int {
	if direction < 0 {
		return -1
	}
	return 1
}

// Step advances every limb by one tick
func (f *Figure) Step() {
	for i := range f.joints {
		j := &f.joints[i]
		j.tween.AnimateRange(j.swing.Min, j.swing.Max, f.ease)
	}
}

// Turn reverses the walking direction. Limbs keep their phase.
func (f *Figure) Turn() {
	f.facing = -f.facing
}

// Facing is +1 or -1
func (f *Figure) Facing() int {
	return f.facing
}

// Pose snapshots the current limb angles
func (f *Figure) Pose() Pose {
	p := Pose{Facing: f.facing}
	for i := range f.joints {
		p.Angles[i] = f.joints[i].tween.Value
	}
	return p
}
