package mathx

import "testing"

func TestNewIntervalNormalises(t *testing.T) {
	iv := NewInterval(24, 11)
	if iv.Min != 11 || iv.Max != 24 {
		t.Fatalf("got [%v, %v], want [11, 24]", iv.Min, iv.Max)
	}
	if iv.Size() != 13 {
		t.Errorf("size = %v, want 13", iv.Size())
	}
}

func TestContainsExclusive(t *testing.T) {
	iv := NewInterval(11, 24)
	tests := []struct {
		x    float64
		want bool
	}{
		{11, false},
		{11.0001, true},
		{15, true},
		{24, false},
		{30, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := iv.ContainsExclusive(tt.x); got != tt.want {
			t.Errorf("ContainsExclusive(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestShrink(t *testing.T) {
	iv := NewInterval(10, 25).Shrink(1)
	if iv.Min != 11 || iv.Max != 24 {
		t.Fatalf("got [%v, %v], want [11, 24]", iv.Min, iv.Max)
	}

	empty := NewInterval(10, 11).Shrink(1)
	if empty.Size() != 0 {
		t.Errorf("over-shrunk size = %v, want 0", empty.Size())
	}
	if empty.ContainsExclusive(10.5) {
		t.Error("empty interval must contain nothing")
	}
}
