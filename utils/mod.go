package utils

import "cmp"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the index of the largest element, preferring the earliest on
// ties. Panics on an empty slice.
func ArgMax[T cmp.Ordered](slice []T) int {
	if len(slice) == 0 {
		panic("ArgMax of empty slice")
	}
	maxIndex := 0
	for i, v := range slice {
		if v > slice[maxIndex] {
			maxIndex = i
		}
	}
	return maxIndex
}
