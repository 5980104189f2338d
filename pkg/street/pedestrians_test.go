package street

import (
	"errors"
	"testing"

	"github.com/iamjwc/driving-without-turning/internal/mathx"
	"github.com/iamjwc/driving-without-turning/pkg/animation"
)

func testPopulation(side Side) *Population {
	return NewPopulation(side, PopulationOptions{
		Step:        0.5,
		Threshold:   DefaultThreshold,
		MinGapWidth: DefaultMinGapWidth,
		MaxAttempts: DefaultMaxPlacementAttempts,
		Seed:        1,
	})
}

func TestPlaceUsesDistinctGaps(t *testing.T) {
	obstacles := []float64{0, 20, 40, 60, 80, 100}
	var filled GapFlags
	p := testPopulation(Left)

	n, err := p.Place(4, obstacles, &filled, 0, 100, mathx.NewRand(3))
	if err != nil || n != 4 {
		t.Fatalf("Place = %d, %v; want 4, nil", n, err)
	}
	if len(filled) != len(obstacles)-1 {
		t.Fatalf("flags sized %d, want %d", len(filled), len(obstacles)-1)
	}

	seen := map[int]bool{}
	for _, m := range p.Members() {
		gap := gapAt(obstacles, m.Z, DefaultThreshold, DefaultMinGapWidth)
		if gap < 0 {
			t.Fatalf("pedestrian at %v is not in a gap", m.Z)
		}
		if seen[gap] {
			t.Fatalf("two pedestrians placed in gap %d", gap)
		}
		seen[gap] = true
		if !filled.Filled(gap) {
			t.Errorf("gap %d not marked filled", gap)
		}
		if m.Direction != 1 || m.Side != Left || m.Figure == nil {
			t.Errorf("pedestrian = %+v", m)
		}
	}
}

func TestPlaceReleasesPreviousPopulation(t *testing.T) {
	obstacles := []float64{0, 20, 40}
	var filled GapFlags
	p := testPopulation(Right)
	rng := mathx.NewRand(9)

	if n, err := p.Place(2, obstacles, &filled, 0, 40, rng); err != nil || n != 2 {
		t.Fatalf("first Place = %d, %v", n, err)
	}
	first := p.Members()[0].ID

	if n, err := p.Place(2, obstacles, &filled, 0, 40, rng); err != nil || n != 2 {
		t.Fatalf("second Place = %d, %v; flags were not released", n, err)
	}
	if p.Len() != 2 {
		t.Errorf("population size = %d, want 2", p.Len())
	}
	if p.Members()[0].ID == first {
		t.Error("re-placed pedestrian kept its old identity")
	}
	if p.Members()[0].Direction != -1 {
		t.Errorf("right side pedestrian walks %d, want -1", p.Members()[0].Direction)
	}
}

func TestPlaceExhaustion(t *testing.T) {
	tests := []struct {
		name      string
		obstacles []float64
		count     int
		wantN     int
	}{
		{"no usable gap", []float64{0, 5}, 2, 0},
		{"single obstacle", []float64{10}, 1, 0},
		{"more pedestrians than gaps", []float64{0, 20, 40}, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var filled GapFlags
			p := testPopulation(Left)
			n, err := p.Place(tt.count, tt.obstacles, &filled, 0, 40, mathx.NewRand(5))
			if !errors.Is(err, ErrPlacementExhausted) {
				t.Fatalf("err = %v, want ErrPlacementExhausted", err)
			}
			if n != tt.wantN || p.Len() != tt.wantN {
				t.Errorf("placed %d (len %d), want %d", n, p.Len(), tt.wantN)
			}
		})
	}
}

func TestPlaceIsDeterministic(t *testing.T) {
	obstacles := []float64{0, 20, 40, 60, 80, 100, 120}
	place := func() []Pedestrian {
		var filled GapFlags
		p := testPopulation(Left)
		if _, err := p.Place(5, obstacles, &filled, 0, 120, mathx.NewRand(11)); err != nil {
			t.Fatal(err)
		}
		return p.Members()
	}
	a, b := place(), place()
	for i := range a {
		if a[i].Z != b[i].Z || a[i].ID != b[i].ID {
			t.Fatalf("pedestrian %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestAdvanceTurnsAroundAtObstacle(t *testing.T) {
	obstacles := []float64{0, 20}
	p := testPopulation(Left)
	p.members = []Pedestrian{{Z: 18.5, Direction: 1, Side: Left, Figure: animation.NewFigure(1)}}

	if turned := p.Advance(obstacles); turned != 1 {
		t.Fatalf("turned = %d, want 1", turned)
	}
	m := p.Members()[0]
	if m.Direction != -1 || m.Z != 18.5 {
		t.Fatalf("after blocked step: z=%v dir=%d, want z=18.5 dir=-1", m.Z, m.Direction)
	}
	if m.Figure.Facing() != -1 {
		t.Error("figure did not turn")
	}

	if turned := p.Advance(obstacles); turned != 0 {
		t.Fatalf("turned = %d on a free step", turned)
	}
	if got := p.Members()[0].Z; got != 18 {
		t.Errorf("z = %v, want 18", got)
	}
}

func TestAdvanceAllowsSharedGaps(t *testing.T) {
	obstacles := []float64{0, 40}
	p := testPopulation(Left)
	p.members = []Pedestrian{
		{Z: 10, Direction: 1},
		{Z: 10.5, Direction: -1},
	}
	p.Advance(obstacles)
	if p.members[0].Z != 10.5 || p.members[1].Z != 10 {
		t.Errorf("pedestrians = %v, %v; want them to pass each other", p.members[0].Z, p.members[1].Z)
	}
}

func TestWalkStaysInsideGap(t *testing.T) {
	obstacles := []float64{0, 20, 35, 80}
	p := testPopulation(Right)
	p.members = []Pedestrian{{Z: 5, Direction: 1}, {Z: 50, Direction: -1}}
	for i := 0; i < 1000; i++ {
		p.Advance(obstacles)
		for _, m := range p.members {
			if !IsValidSpot(obstacles, m.Z, DefaultThreshold, DefaultMinGapWidth) {
				t.Fatalf("tick %d: pedestrian walked out of its gap to %v", i, m.Z)
			}
		}
	}
}

func TestRecycleRepeatsUntilAheadOfCamera(t *testing.T) {
	p := testPopulation(Left)
	p.members = []Pedestrian{{Z: 50}, {Z: 300}, {Z: 259.9}}

	if moved := p.Recycle(260, 200); moved != 2 {
		t.Errorf("moved = %d, want 2", moved)
	}
	want := []float64{450, 300, 459.9}
	for i, w := range want {
		if got := p.members[i].Z; got != w {
			t.Errorf("pedestrian %d at %v, want %v", i, got, w)
		}
	}
	if p.Len() != 3 {
		t.Errorf("population size changed to %d", p.Len())
	}
}
