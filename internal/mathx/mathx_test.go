package mathx

import (
	"math"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0, -3, 3, 0},
		{4, -3, 3, -2},
		{-4, -3, 3, 2},
		{3, -3, 3, -3},
		{-3, -3, 3, -3},
		{1e6 + 0.5, 0, 1, 0.5},
	}
	for _, tt := range tests {
		got := Wrap(tt.v, tt.lo, tt.hi)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Wrap(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestClampAndLerp(t *testing.T) {
	if Clamp(5, 0, 2) != 2 || Clamp(-1, 0, 2) != 0 || Clamp(1, 0, 2) != 1 {
		t.Error("clamp out of bounds")
	}
	if Lerp(0, 10, 0.25) != 2.5 {
		t.Error("lerp mismatch")
	}
}

func TestPerlin1DBounded(t *testing.T) {
	for x := 0.0; x < 50; x += 0.37 {
		v := Perlin1D(x, 11)
		if v < -1.01 || v > 1.01 {
			t.Fatalf("Perlin1D(%v) = %v out of range", x, v)
		}
	}
	if Perlin1D(3, 11) != 0 {
		t.Error("noise must vanish on lattice points")
	}
}
