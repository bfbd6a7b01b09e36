package mixnet

import (
	"math"

	"github.com/bgshuffle/core/internal/mixerr"
)

// decompose splits N into m*n per spec §4.11: m is the largest integer at
// most floor(sqrt(N)) that divides N, searched downward; this always
// terminates at m=1 for a prime N. Requires N >= 2.
func decompose(N int) (int, int, error) {
	if N < 2 {
		return 0, 0, mixerr.InvalidInput("shuffle requires N >= 2, got %d", N)
	}
	root := int(math.Sqrt(float64(N)))
	for m := root; m >= 1; m-- {
		if N%m == 0 {
			return m, N / m, nil
		}
	}
	return 1, N, nil
}
