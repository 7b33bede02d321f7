package playlist

import "math/rand/v2"

// Shuffle returns a uniformly random permutation of s (Fisher–Yates).
// The input is never modified.
func Shuffle[T any](s []T) []T {
	result := make([]T, len(s))
	copy(result, s)
	for i := len(result) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		result[i], result[j] = result[j], result[i]
	}
	return result
}
