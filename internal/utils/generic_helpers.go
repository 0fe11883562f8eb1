package utils

func Filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func Map[T any, R any](in []T, f func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

// IndexFunc returns the first index whose element satisfies pred, or -1.
func IndexFunc[T any](in []T, pred func(T) bool) int {
	for i, v := range in {
		if pred(v) {
			return i
		}
	}
	return -1
}
