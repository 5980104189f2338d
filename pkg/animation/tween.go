package animation

import "math"

// Tween drives one value from Start to End over N steps.
type Tween struct {
	Value float64
	Start float64
	End   float64
	I     int
	N     int
}

// NewTween starts at from and heads to to over n steps
func NewTween(from, to float64, n int) *Tween {
	t := &Tween{Value: from}
	t.RedirectTo(to, n)
	return t
}

// RedirectTo restarts the tween from its current value
func (t *Tween) RedirectTo(end float64, n int) {
	t.Start = t.Value
	t.End = end
	t.I = 0
	t.N = n
}

// Animating reports whether steps remain
func (t *Tween) Animating() bool {
	return t.I < t.N
}

// Animate takes one step and returns the new value. A finished tween
// settles exactly on End.
func (t *Tween) Animate(ease Easing) float64 {
	if t.I < t.N {
		t.I++
		t.Value = ease(t.Start, t.End-t.Start, t.I, t.N)
	}
	if t.I >= t.N {
		t.Value = t.End
	}
	return t.Value
}

// AnimateRange swings the value back and forth between lo and hi, turning
// at whichever end it last reached.
func (t *Tween) AnimateRange(lo, hi float64, ease Easing) float64 {
	if !t.Animating() {
		if math.Abs(t.Value-lo) <= math.Abs(t.Value-hi) {
			t.RedirectTo(hi, t.N)
		} else {
			t.RedirectTo(lo, t.N)
		}
	}
	return t.Animate(ease)
}
