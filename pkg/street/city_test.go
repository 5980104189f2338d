package street

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iamjwc/driving-without-turning/internal/logger"
	"github.com/iamjwc/driving-without-turning/pkg/config"
)

func testOptions(seed uint64) Options {
	return Options{Street: config.DefaultConfig().Street, Seed: seed, Strict: true}
}

func newTestCity(t *testing.T, opts Options, cameraZ float64) *City {
	t.Helper()
	c, err := NewCity(opts, cameraZ, nil)
	if err != nil {
		t.Fatalf("NewCity: %v", err)
	}
	return c
}

// drive moves the camera like the viewer does, varying speed over time
func drive(t *testing.T, c *City, cameraZ float64, ticks int, check func(f Frame)) float64 {
	t.Helper()
	speeds := []float64{0.5, 2.0, 0, 1.25, 0.075}
	for i := 0; i < ticks; i++ {
		cameraZ += speeds[(i/100)%len(speeds)]
		c.Tick(cameraZ)
		if check != nil {
			check(c.Frame())
		}
	}
	return cameraZ
}

func TestCityInitialState(t *testing.T) {
	c := newTestCity(t, testOptions(42), -5)
	f := c.Frame()

	if f.FirstZ != 0 || f.WindowLength != 200 {
		t.Errorf("firstZ=%v window=%v, want 0 and 200", f.FirstZ, f.WindowLength)
	}
	if len(f.Blocks) != 9 {
		t.Errorf("frame has %d blocks, want 9", len(f.Blocks))
	}
	st := c.Stats()
	if st.Placed[Left] != 5 || st.Placed[Right] != 5 || st.Exhausted != 0 {
		t.Errorf("placement stats = %+v", st)
	}
	for _, side := range Sides {
		if got := len(f.Obstacles[side]); got < 9 {
			t.Errorf("%s side has %d obstacles, want at least the 9 streetlights", side, got)
		}
		for _, p := range f.Pedestrians[side] {
			if p.Z < -5 || p.Z >= 195 {
				t.Errorf("%s pedestrian placed at %v", side, p.Z)
			}
		}
	}
}

func TestCityInvariantsHoldOverLongDrive(t *testing.T) {
	c := newTestCity(t, testOptions(7), -5)
	var counts [2]int
	for _, side := range Sides {
		counts[side] = len(c.Obstacles(side))
	}

	// Strict mode panics on any violation
	drive(t, c, -5, 5000, func(f Frame) {
		for _, side := range Sides {
			if len(f.Obstacles[side]) != counts[side] {
				t.Fatalf("tick %d: %s obstacles %d, want %d", f.Tick, side, len(f.Obstacles[side]), counts[side])
			}
			if len(f.Pedestrians[side]) != 5 {
				t.Fatalf("tick %d: %s pedestrians %d, want 5", f.Tick, side, len(f.Pedestrians[side]))
			}
			for i := 1; i < len(f.Obstacles[side]); i++ {
				if f.Obstacles[side][i-1].Z > f.Obstacles[side][i].Z {
					t.Fatalf("tick %d: %s obstacles unsorted", f.Tick, side)
				}
			}
			for _, p := range f.Pedestrians[side] {
				if p.Z < f.CameraZ {
					t.Fatalf("tick %d: pedestrian fell behind the camera: %v < %v", f.Tick, p.Z, f.CameraZ)
				}
			}
		}
		if f.Dropped != 0 {
			t.Fatalf("tick %d dropped %d entities", f.Tick, f.Dropped)
		}
	})

	st := c.Stats()
	if st.Violations != 0 || st.Ticks != 5000 {
		t.Errorf("stats = %+v", st)
	}
	if st.Recycled == 0 || st.WindowShifts == 0 || st.Turned == 0 {
		t.Errorf("long drive did not recycle, shift or turn: %+v", st)
	}
}

func TestCityFrameMatchesLedger(t *testing.T) {
	c := newTestCity(t, testOptions(3), -5)
	drive(t, c, -5, 321, nil)

	f := c.Frame()
	for _, side := range Sides {
		ledger := c.Obstacles(side)
		if len(ledger) != len(f.Obstacles[side]) {
			t.Fatalf("%s frame has %d obstacles, ledger %d", side, len(f.Obstacles[side]), len(ledger))
		}
		for i := range ledger {
			if ledger[i] != f.Obstacles[side][i] {
				t.Fatalf("%s obstacle %d drawn at %+v, recorded %+v", side, i, f.Obstacles[side][i], ledger[i])
			}
		}
	}
}

func TestCityIsReproducible(t *testing.T) {
	a := newTestCity(t, testOptions(99), -5)
	b := newTestCity(t, testOptions(99), -5)
	drive(t, a, -5, 700, nil)
	drive(t, b, -5, 700, nil)

	fa, fb := a.Frame(), b.Frame()
	for _, side := range Sides {
		for i := range fa.Pedestrians[side] {
			pa, pb := fa.Pedestrians[side][i], fb.Pedestrians[side][i]
			if pa.ID != pb.ID || pa.Z != pb.Z || pa.Direction != pb.Direction {
				t.Fatalf("%s pedestrian %d differs: %+v vs %+v", side, i, pa, pb)
			}
		}
	}
}

func TestCityReplacesOnWindowShift(t *testing.T) {
	opts := testOptions(5)
	opts.Street.ReplaceOnShift = true
	c := newTestCity(t, opts, -5)
	before := c.Pedestrians(Left)[0].ID

	cam := -5.0
	for cam < 450 {
		cam += 2
		c.Tick(cam)
	}
	st := c.Stats()
	if st.WindowShifts < 2 {
		t.Fatalf("window shifts = %d, want at least 2", st.WindowShifts)
	}
	if st.Placed[Left] != 5 || st.Placed[Right] != 5 {
		t.Errorf("re-placement stats = %+v", st.Placed)
	}
	if c.Pedestrians(Left)[0].ID == before {
		t.Error("pedestrians were not re-placed on a window shift")
	}
}

func TestCityStartingFarDownTheRoad(t *testing.T) {
	c := newTestCity(t, testOptions(11), 12345.6)
	drive(t, c, 12345.6, 300, nil)
	if st := c.Stats(); st.Violations != 0 || st.Exhausted != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCityDropsEntitiesOutsideWindow(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriterLogger("warn", &buf)
	opts := testOptions(13)
	opts.Strict = false

	c, err := NewCity(opts, -5, log)
	if err != nil {
		t.Fatal(err)
	}
	// A jump longer than the window breaks the single-step recycle rule
	c.Tick(1000)

	f := c.Frame()
	if f.Dropped == 0 {
		t.Fatal("expected entities to be dropped from the frame")
	}
	if c.Stats().Violations == 0 {
		t.Error("violations not counted")
	}
	if !strings.Contains(buf.String(), "invariant violated") {
		t.Errorf("no warning logged: %q", buf.String())
	}
}

func TestCityStrictModePanics(t *testing.T) {
	c := newTestCity(t, testOptions(13), -5)
	defer func() {
		if recover() == nil {
			t.Error("strict city did not panic on an invariant violation")
		}
	}()
	c.Tick(1000)
}

func TestNewCityRejectsBadStreet(t *testing.T) {
	opts := testOptions(1)
	opts.Street.BlockCount = 1
	if _, err := NewCity(opts, 0, nil); err == nil {
		t.Error("expected an error for a single-block street")
	}
}

func TestFrameBufferSwaps(t *testing.T) {
	b := NewFrameBuffer()
	b.Publish(func(f *Frame) { f.Tick = 1 })
	b.Publish(func(f *Frame) { f.Tick = 2 })

	var got uint64
	b.View(func(f *Frame) { got = f.Tick })
	if got != 2 {
		t.Errorf("front frame tick = %d, want 2", got)
	}
}
