package street

import "github.com/iamjwc/driving-without-turning/internal/mathx"

const (
	// DefaultThreshold is the clearance kept from each obstacle
	DefaultThreshold = 1.0
	// DefaultMinGapWidth is the smallest usable gap after clearance
	DefaultMinGapWidth = 10.0
)

// GapFlags marks which gaps already received a pedestrian. Flag i belongs
// to the gap between obstacles i and i+1.
type GapFlags []bool

// Reset sizes the flags for n gaps and releases all of them
func (g *GapFlags) Reset(n int) {
	if n < 0 {
		n = 0
	}
	if cap(*g) < n {
		*g = make(GapFlags, n)
		return
	}
	*g = (*g)[:n]
	for i := range *g {
		(*g)[i] = false
	}
}

// Release frees gap i
func (g GapFlags) Release(i int) {
	if i >= 0 && i < len(g) {
		g[i] = false
	}
}

// Filled reports whether gap i is taken
func (g GapFlags) Filled(i int) bool {
	return i >= 0 && i < len(g) && g[i]
}

// gapAt returns the usable gap strictly containing z, or -1. Gaps of a
// sorted list do not overlap, so at most one can match.
func gapAt(obstacles []float64, z, threshold, minWidth float64) int {
	for i := 0; i+1 < len(obstacles); i++ {
		gap := mathx.NewInterval(obstacles[i], obstacles[i+1]).Shrink(threshold)
		if gap.Size() <= minWidth {
			continue
		}
		if gap.ContainsExclusive(z) {
			return i
		}
	}
	return -1
}

// FindOrReserve claims the gap containing z if it is wide enough and not yet
// filled. obstacles must be sorted.
func FindOrReserve(obstacles []float64, z float64, filled GapFlags, threshold, minWidth float64) bool {
	i := gapAt(obstacles, z, threshold, minWidth)
	if i < 0 || i >= len(filled) || filled[i] {
		return false
	}
	filled[i] = true
	return true
}

// IsValidSpot reports whether z lies in a usable gap, ignoring occupancy.
func IsValidSpot(obstacles []float64, z, threshold, minWidth float64) bool {
	return gapAt(obstacles, z, threshold, minWidth) >= 0
}
