// Package sequences holds small slice algorithms: the longest strictly
// increasing run, an in-place merge of two sorted prefixes, and set
// intersection.
package sequences

import (
	"cmp"

	"github.com/ahrav/go-threatscore/internal/domain"
)

// LongestIncreasingRun returns the length of the longest contiguous,
// strictly increasing run in s, or 0 when s is empty.
func LongestIncreasingRun[T cmp.Ordered](s []T) int {
	if len(s) == 0 {
		return 0
	}

	longest, current := 1, 1
	for i := 1; i < len(s); i++ {
		if s[i] > s[i-1] {
			current++
			longest = max(longest, current)
			continue
		}
		current = 1
	}
	return longest
}

// MergeSortedInPlace merges b[:n] into a so that a[:m+n] is sorted
// ascending, assuming a[:m] and b[:n] are already sorted. a must have room
// for n trailing elements after its first m. Elements are filled from the
// back, so no scratch space is needed and equal elements from a stay ahead
// of those from b.
func MergeSortedInPlace[T cmp.Ordered](a []T, m int, b []T, n int) error {
	switch {
	case m < 0:
		return domain.NewArgumentError("m", m, "must not be negative")
	case n < 0:
		return domain.NewArgumentError("n", n, "must not be negative")
	case n > len(b):
		return domain.NewArgumentError("n", n, "exceeds len(b)")
	case m > len(a)-n:
		return domain.NewArgumentError("m", m, "a has no room for m+n elements")
	}

	i, j, k := m-1, n-1, m+n-1
	for j >= 0 {
		if i >= 0 && a[i] > b[j] {
			a[k] = a[i]
			i--
		} else {
			a[k] = b[j]
			j--
		}
		k--
	}
	return nil
}

// Intersection returns the distinct elements present in both a and b.
// The order of the result is not specified.
func Intersection[T comparable](a, b []T) []T {
	if len(a) > len(b) {
		a, b = b, a
	}

	seen := make(map[T]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}

	out := make([]T, 0, len(seen))
	for _, v := range b {
		if seen[v] {
			out = append(out, v)
			// Each shared value is emitted once.
			delete(seen, v)
		}
	}
	return out
}
