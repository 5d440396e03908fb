package types

// SliceContains returns true if the given slice contains the given value.
func SliceContains[T comparable](slice []T, value T) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// SliceUnique returns a new slice with unique values from the given slice,
// preserving the order of first occurrence.
func SliceUnique[T comparable](slice []T) []T {
	visited := make(map[T]bool)
	var result []T
	for _, item := range slice {
		if _, ok := visited[item]; !ok {
			visited[item] = true
			result = append(result, item)
		}
	}
	return result
}

// GetSliceMaxRepetitionNumber returns the maximum number of non-unique values in the given slice.
func GetSliceMaxRepetitionNumber[T comparable](values []T) int {
	max := 0

	if len(values) <= 1 {
		return max
	}

	visited := make(map[T]int)
	for _, item := range values {
		visited[item]++
	}

	for _, value := range visited {
		if value > max {
			max = value
		}
	}

	if max > 0 {
		max--
	}

	return max
}

// AppendSliceFirstNonEmpty appends the first non-empty value to the given slice.
func AppendSliceFirstNonEmpty[T comparable](data []T, value ...T) []T {
	var empty T

	for _, v := range value {
		if v != empty {
			return append(data, v)
		}
	}
	return data
}
