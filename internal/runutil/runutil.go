// Package runutil holds small helpers shared by the app layers.
package runutil

// DeriveSeed maps a base seed and a replicate number to the seed for
// that replicate's random source. Distinct replicates get distinct,
// well-mixed seeds, and the mapping is stable so a sweep is reproducible
// from the base seed alone regardless of worker scheduling.
func DeriveSeed(base int64, replicate int) int64 {
	x := uint64(base) + uint64(replicate)*0x9E3779B97F4A7C15
	// splitmix64 finalizer
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x)
}
