package animation

// Easing maps progress i of n steps from start by change to a value.
type Easing func(start, change float64, i, n int) float64

func progress(i, n int) float64 {
	if n <= 0 {
		return 1
	}
	return float64(i) / float64(n)
}

// Linear moves by the same amount every step
func Linear(start, change float64, i, n int) float64 {
	return change*progress(i, n) + start
}

func QuadIn(start, change float64, i, n int) float64 {
	t := progress(i, n)
	return change*t*t + start
}

func QuadOut(start, change float64, i, n int) float64 {
	t := progress(i, n)
	return -change*t*(t-2) + start
}

// QuadInOut accelerates over the first half of the steps and decelerates
// over the rest.
func QuadInOut(start, change float64, i, n int) float64 {
	return inOut(QuadIn, QuadOut, start, change, i, n)
}

func CubicIn(start, change float64, i, n int) float64 {
	t := progress(i, n)
	return change*t*t*t + start
}

// CubicOut is the mirror of CubicIn: fast start, soft landing.
func CubicOut(start, change float64, i, n int) float64 {
	t := progress(i, n) - 1
	return change*(t*t*t+1) + start
}

func CubicInOut(start, change float64, i, n int) float64 {
	return inOut(CubicIn, CubicOut, start, change, i, n)
}

func inOut(in, out Easing, start, change float64, i, n int) float64 {
	half := change / 2
	halfN := n / 2
	if halfN == 0 {
		return out(start, change, i, n)
	}
	if i < halfN {
		return in(start, half, i, halfN)
	}
	return out(start+half, change-half, i-halfN, n-halfN)
}
