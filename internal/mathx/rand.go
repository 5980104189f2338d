package mathx

// SplitMix64 is a fast 64-bit mixer used to derive independent seeds.
func SplitMix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Hash2D returns a deterministic hash of (x, y) under seed.
func Hash2D(seed uint64, x, y int) uint64 {
	h := seed
	h ^= uint64(uint32(x)) * 0x9E3779B185EBCA87
	h ^= uint64(uint32(y)) * 0xC2B2AE3D27D4EB4F
	return SplitMix64(h)
}

// Rand is a small deterministic xorshift64* generator. It is not safe for
// concurrent use; give each goroutine its own.
type Rand struct {
	s uint64
}

// NewRand seeds a generator. A zero seed is remapped, xorshift would stick at 0.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

// Reseed restarts the sequence from seed.
func (r *Rand) Reseed(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	r.s = seed
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

// Next returns a uniform value in [low, high).
func (r *Rand) Next(low, high float64) float64 {
	if high <= low {
		return low
	}
	return low + (high-low)*r.Float64()
}
