package engine

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// floatsPerVertex is position followed by normal
const floatsPerVertex = 6

// mesh is an uploaded vertex array drawn with a single DrawArrays call
type mesh struct {
	vao   uint32
	vbo   uint32
	count int32
	mode  uint32
}

// newMesh uploads interleaved position/normal data
func newMesh(vertices []float32, mode uint32, usage uint32) *mesh {
	m := &mesh{mode: mode, count: int32(len(vertices) / floatsPerVertex)}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), usage)
	}

	// Position attribute
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, floatsPerVertex*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// Normal attribute
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, floatsPerVertex*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return m
}

// update replaces the contents of a dynamic mesh
func (m *mesh) update(vertices []float32) {
	m.count = int32(len(vertices) / floatsPerVertex)
	if m.count == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STREAM_DRAW)
}

func (m *mesh) draw() {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(m.mode, 0, m.count)
}

func (m *mesh) delete() {
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
}

// cubeVertices is a unit cube centred on the origin as 36 triangle vertices
func cubeVertices() []float32 {
	faces := []struct {
		normal mgl32.Vec3
		u, v   mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
	}

	out := make([]float32, 0, 36*floatsPerVertex)
	for _, f := range faces {
		c := f.normal.Mul(0.5)
		u, v := f.u.Mul(0.5), f.v.Mul(0.5)
		corners := [4]mgl32.Vec3{
			c.Sub(u).Sub(v),
			c.Add(u).Sub(v),
			c.Add(u).Add(v),
			c.Sub(u).Add(v),
		}
		for _, i := range [6]int{0, 1, 2, 2, 3, 0} {
			p := corners[i]
			out = append(out, p[0], p[1], p[2], f.normal[0], f.normal[1], f.normal[2])
		}
	}
	return out
}

// sphereVertices is a unit-radius UV sphere as triangles
func sphereVertices(stacks, slices int) []float32 {
	point := func(i, j int) mgl32.Vec3 {
		theta := float64(i) / float64(stacks) * math.Pi
		phi := float64(j) / float64(slices) * 2 * math.Pi
		return mgl32.Vec3{
			float32(math.Sin(theta) * math.Cos(phi)),
			float32(math.Cos(theta)),
			float32(math.Sin(theta) * math.Sin(phi)),
		}
	}

	out := make([]float32, 0, stacks*slices*6*floatsPerVertex)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i+1, j+1), point(i, j+1)
			for _, p := range [6]mgl32.Vec3{a, b, c, c, d, a} {
				// On a unit sphere the position is the normal
				out = append(out, p[0], p[1], p[2], p[0], p[1], p[2])
			}
		}
	}
	return out
}

// appendParticle adds one point, or a short streak when streak is non-zero
func appendParticle(dst []float32, p mgl32.Vec3, streak mgl32.Vec3) []float32 {
	dst = append(dst, p[0], p[1], p[2], 0, 1, 0)
	if streak != (mgl32.Vec3{}) {
		q := p.Add(streak)
		dst = append(dst, q[0], q[1], q[2], 0, 1, 0)
	}
	return dst
}
