package street

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iamjwc/driving-without-turning/internal/mathx"
	"github.com/iamjwc/driving-without-turning/pkg/animation"
)

// ErrPlacementExhausted is returned when a pedestrian found no free gap
// within the attempt budget. The population keeps whoever was placed.
var ErrPlacementExhausted = errors.New("placement exhausted")

// DefaultMaxPlacementAttempts bounds the random draws per pedestrian
const DefaultMaxPlacementAttempts = 64

var pedestrianNamespace = uuid.MustParse("6f1c7a52-2b7e-4c55-9d0e-5d7b1c0a8e31")

// Pedestrian walks along one sidewalk
type Pedestrian struct {
	ID        uuid.UUID
	Z         float64
	Direction int // +1 or -1 along z
	Side      Side
	Figure    *animation.Figure
}

// PopulationOptions configures how a side is populated and walked
type PopulationOptions struct {
	Step        float64 // z moved per tick
	Threshold   float64
	MinGapWidth float64
	MaxAttempts int
	Seed        uint64 // feeds pedestrian IDs
}

// Population owns the pedestrians of one side
type Population struct {
	side       Side
	opts       PopulationOptions
	members    []Pedestrian
	generation int
}

func NewPopulation(side Side, opts PopulationOptions) *Population {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxPlacementAttempts
	}
	return &Population{side: side, opts: opts}
}

func (p *Population) Side() Side { return p.side }

func (p *Population) Len() int { return len(p.members) }

// Members returns the pedestrians. The slice is owned by the population.
func (p *Population) Members() []Pedestrian { return p.members }

// Place discards the current pedestrians and rejection-samples count new
// ones into distinct gaps of obstacles. Candidates are drawn uniformly from
// [windowStart, windowStart+windowLength). It returns how many were placed;
// if a pedestrian exhausts its attempts, placement stops there with
// ErrPlacementExhausted.
func (p *Population) Place(count int, obstacles []float64, filled *GapFlags, windowStart, windowLength float64, rng *mathx.Rand) (int, error) {
	p.members = p.members[:0]
	p.generation++
	filled.Reset(len(obstacles) - 1)

	for n := 0; n < count; n++ {
		placed := false
		for attempt := 0; attempt < p.opts.MaxAttempts; attempt++ {
			z := windowStart + rng.Next(0, windowLength)
			if FindOrReserve(obstacles, z, *filled, p.opts.Threshold, p.opts.MinGapWidth) {
				p.members = append(p.members, p.newPedestrian(n, z))
				placed = true
				break
			}
		}
		if !placed {
			return len(p.members), fmt.Errorf("%w: %s side placed %d of %d after %d attempts",
				ErrPlacementExhausted, p.side, len(p.members), count, p.opts.MaxAttempts)
		}
	}
	return len(p.members), nil
}

func (p *Population) newPedestrian(slot int, z float64) Pedestrian {
	name := fmt.Sprintf("%d/%s/%d/%d", p.opts.Seed, p.side, p.generation, slot)
	dir := p.side.Direction()
	return Pedestrian{
		ID:        uuid.NewSHA1(pedestrianNamespace, []byte(name)),
		Z:         z,
		Direction: dir,
		Side:      p.side,
		Figure:    animation.NewFigure(dir),
	}
}

// Advance walks every pedestrian one step. A step that would leave the
// usable gaps turns the pedestrian around instead; it stays put this tick.
func (p *Population) Advance(obstacles []float64) (turned int) {
	for i := range p.members {
		m := &p.members[i]
		dest := m.Z + float64(m.Direction)*p.opts.Step
		if IsValidSpot(obstacles, dest, p.opts.Threshold, p.opts.MinGapWidth) {
			m.Z = dest
			if m.Figure != nil {
				m.Figure.Step()
			}
			continue
		}
		m.Direction = -m.Direction
		if m.Figure != nil {
			m.Figure.Turn()
		}
		turned++
	}
	return turned
}

// Recycle moves pedestrians behind cameraZ ahead by whole windows until
// they are level with or ahead of the camera.
func (p *Population) Recycle(cameraZ, windowLength float64) (moved int) {
	if windowLength <= 0 {
		return 0
	}
	for i := range p.members {
		m := &p.members[i]
		if m.Z >= cameraZ {
			continue
		}
		for m.Z < cameraZ {
			m.Z += windowLength
		}
		moved++
	}
	return moved
}
