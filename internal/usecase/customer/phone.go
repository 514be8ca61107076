package customer

import (
	"fmt"
	"math/rand/v2"
)

// between returns a uniform integer in [lo, hi]
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// Phone returns a phone number in US, UK or Indian format, chosen uniformly.
// Only the shape is realistic; numbers are not checked against numbering plans.
func Phone(rng *rand.Rand) string {
	switch rng.IntN(3) {
	case 0:
		return fmt.Sprintf("+1-%d-%d-%d", between(rng, 200, 999), between(rng, 200, 999), between(rng, 1000, 9999))
	case 1:
		return fmt.Sprintf("+44-%d-%d-%d", between(rng, 20, 79), between(rng, 1000, 9999), between(rng, 1000, 9999))
	default:
		return fmt.Sprintf("+91-%d%d-%d", between(rng, 70, 99), between(rng, 100, 999), between(rng, 10000, 99999))
	}
}
