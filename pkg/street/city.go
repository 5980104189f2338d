package street

import (
	"errors"
	"fmt"
	"io"

	"github.com/iamjwc/driving-without-turning/internal/logger"
	"github.com/iamjwc/driving-without-turning/internal/mathx"
	"github.com/iamjwc/driving-without-turning/pkg/config"
)

// Options configures a City
type Options struct {
	Street config.StreetConfig
	Seed   uint64
	Strict bool // panic on invariant violations instead of dropping entities
}

// Stats counts what the city has done since it was built
type Stats struct {
	Ticks        uint64
	Placed       [2]int
	Exhausted    int
	Turned       int
	Recycled     int
	WindowShifts int
	Violations   int
	Dropped      int
}

// City is the street simulation: generated blocks, the obstacle ledger and
// one pedestrian population per side. It is driven by a single goroutine
// calling Tick; renderers read published frames.
type City struct {
	opts   Options
	log    *logger.Logger
	blocks []Block
	ledger Ledger
	pops   [2]*Population
	filled [2]GapFlags
	rng    *mathx.Rand

	obstacleCount [2]int
	windowIndex   int
	stats         Stats
	frames        *FrameBuffer
}

// NewCity generates the street around cameraZ and places the pedestrians.
// Placement shortfalls are logged and counted, not returned.
func NewCity(opts Options, cameraZ float64, log *logger.Logger) (*City, error) {
	sc := opts.Street
	if sc.BlockLength <= 0 || sc.BlockCount < 2 {
		return nil, fmt.Errorf("%w: street needs a positive block length and at least 2 blocks", config.ErrInvalid)
	}
	if log == nil {
		log = logger.NewWriterLogger("fatal", io.Discard)
	}

	c := &City{
		opts:   opts,
		log:    log,
		blocks: Generate(opts.Seed, sc.BlockLength, sc.BlockCount),
		rng:    mathx.NewRand(mathx.SplitMix64(opts.Seed ^ 0x5eed)),
		frames: NewFrameBuffer(),
	}

	w := c.WindowLength()
	firstZ := ComputeWindow(cameraZ, sc.BlockLength, sc.BlockCount)
	for i := range c.blocks {
		b := &c.blocks[i]
		origin := firstZ + float64(b.Index-1)*sc.BlockLength
		for _, o := range b.Obstacles(origin) {
			o.Z = mathx.Wrap(o.Z, cameraZ, cameraZ+w)
			c.ledger.Record(o.Side, o)
		}
	}
	c.ledger.Recycle(cameraZ, w)
	for _, side := range Sides {
		c.obstacleCount[side] = c.ledger.Len(side)
		c.pops[side] = NewPopulation(side, PopulationOptions{
			Step:        sc.PedestrianStep,
			Threshold:   sc.Threshold,
			MinGapWidth: sc.MinGapWidth,
			MaxAttempts: sc.MaxPlacementAttempts,
			Seed:        opts.Seed,
		})
	}
	c.log.Infof("generated %d blocks: %d left and %d right obstacles",
		len(c.blocks), c.obstacleCount[Left], c.obstacleCount[Right])

	c.place(cameraZ)
	c.windowIndex = WindowIndex(firstZ, sc.BlockLength, sc.BlockCount)
	c.publish(cameraZ, firstZ)
	return c, nil
}

// WindowLength is the z span covered by the recycled blocks
func (c *City) WindowLength() float64 {
	return c.opts.Street.WindowLength()
}

func (c *City) place(cameraZ float64) {
	var errs []error
	for _, side := range Sides {
		n, err := c.pops[side].Place(c.opts.Street.PedestriansPerSide, c.ledger.Positions(side),
			&c.filled[side], cameraZ, c.WindowLength(), c.rng)
		c.stats.Placed[side] = n
		if err != nil {
			c.stats.Exhausted++
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		c.log.Warnf("pedestrian placement incomplete: %v", err)
		return
	}
	c.log.Debugf("placed %d left and %d right pedestrians from z=%.2f",
		c.stats.Placed[Left], c.stats.Placed[Right], cameraZ)
}

// Tick advances the street to cameraZ: obstacles are recycled and sorted,
// pedestrians walk and are recycled, then a frame is published. The camera
// must already have moved.
func (c *City) Tick(cameraZ float64) {
	sc := c.opts.Street
	w := c.WindowLength()
	c.stats.Ticks++

	c.stats.Recycled += c.ledger.Recycle(cameraZ, w)

	firstZ := ComputeWindow(cameraZ, sc.BlockLength, sc.BlockCount)
	if idx := WindowIndex(firstZ, sc.BlockLength, sc.BlockCount); idx != c.windowIndex {
		c.stats.WindowShifts++
		c.log.Debugf("window shifted %d -> %d at z=%.2f", c.windowIndex, idx, cameraZ)
		c.windowIndex = idx
		if sc.ReplaceOnShift {
			c.place(cameraZ)
		}
	}

	for _, side := range Sides {
		pop := c.pops[side]
		c.stats.Turned += pop.Advance(c.ledger.Positions(side))
		c.stats.Recycled += pop.Recycle(cameraZ, w)
	}

	c.verify()
	c.publish(cameraZ, firstZ)
}

func (c *City) violation(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.stats.Violations++
	if c.opts.Strict {
		panic("street: invariant violated: " + msg)
	}
	c.log.Warnf("invariant violated: %s", msg)
}

func (c *City) verify() {
	for _, side := range Sides {
		if n := c.ledger.Len(side); n != c.obstacleCount[side] {
			c.violation("%s obstacle count %d, expected %d", side, n, c.obstacleCount[side])
		}
		if !c.ledger.Sorted(side) {
			c.violation("%s obstacles out of order", side)
		}
		if n := c.pops[side].Len(); n != c.stats.Placed[side] {
			c.violation("%s pedestrian count %d, expected %d", side, n, c.stats.Placed[side])
		}
	}
}

func (c *City) inWindow(z, cameraZ float64) bool {
	return z >= cameraZ && z < cameraZ+c.WindowLength()
}

func (c *City) publish(cameraZ, firstZ float64) {
	sc := c.opts.Street
	c.frames.Publish(func(f *Frame) {
		f.Tick = c.stats.Ticks
		f.CameraZ = cameraZ
		f.FirstZ = firstZ
		f.WindowLength = c.WindowLength()
		f.WindowIndex = c.windowIndex
		f.Dropped = 0

		f.Blocks = f.Blocks[:0]
		for i := range c.blocks {
			b := &c.blocks[i]
			f.Blocks = append(f.Blocks, BlockView{
				Block:      b,
				Offset:     BlockOffset(firstZ, b.Index, cameraZ, sc.BlockLength, sc.BlockCount),
				FoldedBack: FoldsBack(firstZ, b.Index, cameraZ, sc.BlockLength, sc.BlockCount),
			})
		}

		for _, side := range Sides {
			obs := f.Obstacles[side][:0]
			for _, o := range c.ledger.Obstacles(side) {
				if !c.inWindow(o.Z, cameraZ) {
					c.violation("%s %s of block %d at z=%.3f outside [%.3f, %.3f)",
						side, o.Kind, o.Block, o.Z, cameraZ, cameraZ+c.WindowLength())
					f.Dropped++
					continue
				}
				obs = append(obs, o)
			}
			f.Obstacles[side] = obs

			peds := f.Pedestrians[side][:0]
			for _, p := range c.pops[side].Members() {
				if !c.inWindow(p.Z, cameraZ) {
					c.violation("%s pedestrian %s at z=%.3f outside [%.3f, %.3f)",
						side, p.ID, p.Z, cameraZ, cameraZ+c.WindowLength())
					f.Dropped++
					continue
				}
				view := PedestrianView{ID: p.ID, Z: p.Z, Direction: p.Direction, Side: p.Side}
				if p.Figure != nil {
					view.Pose = p.Figure.Pose()
				}
				peds = append(peds, view)
			}
			f.Pedestrians[side] = peds
		}
		c.stats.Dropped += f.Dropped
	})
}

// Frame returns a copy of the last published frame
func (c *City) Frame() Frame {
	var out Frame
	c.frames.View(func(f *Frame) { out = f.Clone() })
	return out
}

// View lets a renderer read the last published frame without copying it
func (c *City) View(fn func(f *Frame)) {
	c.frames.View(fn)
}

// Blocks returns the generated blocks
func (c *City) Blocks() []Block { return c.blocks }

// Obstacles returns one side of the ledger
func (c *City) Obstacles(side Side) []Obstacle { return c.ledger.Obstacles(side) }

// Pedestrians returns one side's population
func (c *City) Pedestrians(side Side) []Pedestrian { return c.pops[side].Members() }

func (c *City) Stats() Stats { return c.stats }
