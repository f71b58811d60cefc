// Package utils holds small generic helpers
package utils

// FindIndex returns the index of the first element equal to item, or -1
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Sum adds up the counts of a tally
func Sum[K comparable](tally map[K]int) int {
	total := 0
	for _, count := range tally {
		total += count
	}
	return total
}
