package street

import (
	"sync"

	"github.com/google/uuid"

	"github.com/iamjwc/driving-without-turning/pkg/animation"
)

// PedestrianView is the drawable state of one pedestrian
type PedestrianView struct {
	ID        uuid.UUID
	Z         float64
	Direction int
	Side      Side
	Pose      animation.Pose
}

// BlockView places a generated block for drawing
type BlockView struct {
	Block      *Block
	Offset     float64
	FoldedBack bool
}

// Frame is the state of one completed tick, as read by the renderer.
type Frame struct {
	Tick         uint64
	CameraZ      float64
	FirstZ       float64
	WindowLength float64
	WindowIndex  int
	Blocks       []BlockView
	Obstacles    [2][]Obstacle
	Pedestrians  [2][]PedestrianView
	Dropped      int // entities left out after failing the window check
}

// Clone returns a copy that shares no slices with f
func (f *Frame) Clone() Frame {
	out := *f
	out.Blocks = append([]BlockView(nil), f.Blocks...)
	for _, side := range Sides {
		out.Obstacles[side] = append([]Obstacle(nil), f.Obstacles[side]...)
		out.Pedestrians[side] = append([]PedestrianView(nil), f.Pedestrians[side]...)
	}
	return out
}

// FrameBuffer hands frames from a single writer to any number of readers.
// The writer fills the back frame without holding the lock; readers only
// ever see the front frame of a completed tick.
type FrameBuffer struct {
	mu    sync.RWMutex
	front *Frame
	back  *Frame
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{front: &Frame{}, back: &Frame{}}
}

// Publish fills the back frame and swaps it to the front
func (b *FrameBuffer) Publish(fill func(f *Frame)) {
	fill(b.back)
	b.mu.Lock()
	b.front, b.back = b.back, b.front
	b.mu.Unlock()
}

// View calls fn with the front frame. fn must not keep f.
func (b *FrameBuffer) View(fn func(f *Frame)) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	fn(b.front)
}
