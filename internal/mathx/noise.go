package mathx

import "math"

// Perlin1D generates 1D gradient noise in roughly [-1, 1]
func Perlin1D(x float64, seed int64) float64 {
	// Get grid points
	x0 := math.Floor(x)
	x1 := x0 + 1.0

	// Smooth interpolation factor
	sx := fade(x - x0)

	g0 := gradient1D(hash(int(x0), int(seed)))
	g1 := gradient1D(hash(int(x1), int(seed)))

	v0 := g0 * (x - x0)
	v1 := g1 * (x - x1)

	return Lerp(v0, v1, sx) * 2.0
}

// hash combines a lattice coordinate and seed
func hash(x, seed int) int {
	h := seed + x*374761393
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

func gradient1D(h int) float64 {
	if h&1 == 0 {
		return 1.0
	}
	return -1.0
}

// fade is the improved Perlin curve: 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6.0-15.0) + 10.0)
}
