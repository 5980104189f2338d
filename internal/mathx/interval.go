package mathx

// Interval is a closed span [Min, Max] on the number line
type Interval struct {
	Min float64
	Max float64
}

// NewInterval builds an interval from two bounds in either order
func NewInterval(a, b float64) Interval {
	if a <= b {
		return Interval{Min: a, Max: b}
	}
	return Interval{Min: b, Max: a}
}

// Size returns the width of the interval
func (iv Interval) Size() float64 {
	return iv.Max - iv.Min
}

// ContainsExclusive reports whether x lies strictly between the bounds
func (iv Interval) ContainsExclusive(x float64) bool {
	return x > iv.Min && x < iv.Max
}

// Shrink pulls both bounds inwards by margin. The result may be empty
// (Min > Max is normalised away, so an over-shrunk interval has Size 0
// around its midpoint).
func (iv Interval) Shrink(margin float64) Interval {
	lo, hi := iv.Min+margin, iv.Max-margin
	if lo > hi {
		mid := (iv.Min + iv.Max) * 0.5
		return Interval{Min: mid, Max: mid}
	}
	return Interval{Min: lo, Max: hi}
}
