package types

import (
	"fmt"
	"strconv"
)

// ToString converts an arbitrary scalar value to its string representation.
func ToString(value any) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// RemovePointer returns the value behind the pointer or the zero value if the pointer is nil.
func RemovePointer[T any](value *T) T {
	var res T
	if value == nil {
		return res
	}
	return *value
}
