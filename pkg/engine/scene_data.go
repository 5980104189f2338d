package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/iamjwc/driving-without-turning/pkg/environment"
	"github.com/iamjwc/driving-without-turning/pkg/simulation"
	"github.com/iamjwc/driving-without-turning/pkg/street"
)

// SceneData is everything a renderer needs for one frame. Frame points at
// the street's published front buffer and is only valid during Render.
type SceneData struct {
	Frame       *street.Frame
	Eye         mgl32.Vec3
	Target      mgl32.Vec3
	Env         *environment.Environment
	Particles   []mgl32.Vec3
	Readout     simulation.Readout
	MaxSpeed    float64
	BlockLength float32
}

func toVec3(x, y, z float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}
