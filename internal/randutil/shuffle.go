package randutil

// Shuffle returns a uniformly permuted copy of in using Fisher-Yates from the
// last index down to 1. The input is never modified.
func Shuffle[T any](src Source, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
