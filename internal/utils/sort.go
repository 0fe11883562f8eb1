package utils

import (
	"cmp"
	"sort"
	"strings"
)

// SortBy stable-sorts xs by the key extracted from each element.
func SortBy[T any, K cmp.Ordered](xs []T, key func(T) K) {
	sort.SliceStable(xs, func(i, j int) bool {
		return key(xs[i]) < key(xs[j])
	})
}

// ParseSortKey normalizes a user supplied sort field name.
func ParseSortKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
