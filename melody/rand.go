package melody

// Rand is the random source every stochastic operation in this
// package draws from. *math/rand.Rand satisfies it directly, so
// callers can pass one seeded however they like; nothing in this
// package reaches for package-level global randomness.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// intRange returns a uniform integer in [lo, hi], inclusive.
func intRange(rng Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
