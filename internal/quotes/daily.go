package quotes

import (
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// DailyIndex maps a calendar date to an index in [0, n).
// Only the year, month and day of date (in its own location) are used. The seed is
// the FNV-1a hash of the ISO date and the draw is a single PCG output, both of which
// have fixed definitions.
func DailyIndex(date time.Time, n int) int {
	if n <= 0 {
		return 0
	}

	h := fnv.New64a()
	h.Write([]byte(date.Format(time.DateOnly)))
	seed := h.Sum64()

	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return int(pcg.Uint64() % uint64(n))
}
