package perm

import (
	"iter"
	"slices"
)

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// GCD returns the greatest common divisor of a and b. The result is never
// negative, and GCD(0, 0) is 0.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Binomial returns n choose k, the number of k-element subsets of n elements.
// It returns 0 when k < 0 or k > n.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}

// Combinations returns the k-element subsets of [0, 1, ..., n-1] as ascending
// index slices, in lexicographic order.
//
// If limit > 0, Combinations returns at most limit subsets.
// If limit <= 0, Combinations returns all Binomial(n, k) subsets.
//
// Edge cases:
//   - k = 0: returns [[]] (the empty subset)
//   - k < 0 or k > n: returns nil
func Combinations(n, k, limit int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	capacity := Binomial(n, k)
	if limit > 0 {
		capacity = min(capacity, limit)
	}
	result := make([][]int, 0, capacity)

	comb := Seq(k)
	for limit <= 0 || len(result) < limit {
		result = append(result, slices.Clone(comb))

		// Find the rightmost index that can still move right.
		i := k - 1
		for i >= 0 && comb[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		comb[i]++
		for j := i + 1; j < k; j++ {
			comb[j] = comb[j-1] + 1
		}
	}
	return result
}

// ProductSize returns the number of tuples [Product] yields for sets.
// It returns 0 if any set is empty and 1 for no sets at all.
func ProductSize[T any](sets [][]T) int {
	n := 1
	for _, s := range sets {
		n *= len(s)
	}
	return n
}

// Product yields the Cartesian product of sets: one element from each set, in
// odometer order with the last set varying fastest. The yielded slice is a
// fresh allocation each time and safe to retain.
//
// With no sets, Product yields a single empty tuple. If any set is empty it
// yields nothing.
func Product[T any](sets [][]T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for _, s := range sets {
			if len(s) == 0 {
				return
			}
		}
		idx := make([]int, len(sets))
		for {
			tuple := make([]T, len(sets))
			for i, j := range idx {
				tuple[i] = sets[i][j]
			}
			if !yield(tuple) {
				return
			}

			i := len(sets) - 1
			for i >= 0 {
				idx[i]++
				if idx[i] < len(sets[i]) {
					break
				}
				idx[i] = 0
				i--
			}
			if i < 0 {
				return
			}
		}
	}
}
