// Package collection holds the generic slice helpers the marketplace code
// leans on instead of hand-rolled loops. Everything here is pure: inputs are
// never mutated except where documented (SortBy), and helpers compose freely.
//
//	approved := collection.Filter(products, func(p models.Product) bool {
//	    return p.Status == models.StatusApproved
//	})
//	earnings := collection.Sum(users, func(u models.User) float64 { return u.TotalEarnings })
package collection

import "sort"

// Map transforms every element of s through fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i := range s {
		out[i] = fn(s[i])
	}
	return out
}

// Filter keeps the elements of s for which fn is true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reject drops the elements of s for which fn is true.
func Reject[T any](s []T, fn func(T) bool) []T {
	return Filter(s, func(v T) bool { return !fn(v) })
}

// First returns the first element matching fn, or (zero, false) when none does.
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether any element of s satisfies fn.
func Contains[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}

// Prepend returns a new slice with v placed before the elements of s.
// Collections in the store document are kept newest-first, so insertions
// go through here rather than append.
func Prepend[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}

// GroupBy buckets s by the key fn derives from each element.
func GroupBy[T any, K comparable](s []T, fn func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range s {
		out[fn(v)] = append(out[fn(v)], v)
	}
	return out
}

// KeyBy indexes s by the key fn derives from each element.
// Later elements win on key collisions.
func KeyBy[T any, K comparable](s []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(s))
	for _, v := range s {
		out[fn(v)] = v
	}
	return out
}

// Unique removes duplicate elements, preserving first-seen order.
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	var out []T
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SortBy sorts s in place with a stable sort and returns it for chaining.
func SortBy[T any](s []T, less func(a, b T) bool) []T {
	sort.SliceStable(s, func(i, j int) bool { return less(s[i], s[j]) })
	return s
}

// Reduce folds s into a single value, starting from initial.
func Reduce[T, R any](s []T, initial R, fn func(carry R, item T) R) R {
	carry := initial
	for _, v := range s {
		carry = fn(carry, v)
	}
	return carry
}

// Sum adds up the float64 fn extracts from each element.
func Sum[T any](s []T, fn func(T) float64) float64 {
	return Reduce(s, 0.0, func(acc float64, v T) float64 { return acc + fn(v) })
}

// Paginate returns the 1-based page of size items from s.
// Pages past the end return nil.
func Paginate[T any](s []T, page, size int) []T {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(s) {
		return nil
	}
	end := start + size
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
