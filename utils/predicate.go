// Package utils holds small generic helpers shared by the converters.
package utils

import "cmp"

// InRange reports whether lo <= v <= hi.
func InRange[T cmp.Ordered](lo, v, hi T) bool {
	return lo <= v && v <= hi
}

// Found keeps the ok of a comma-ok lookup.
func Found[T any](_ T, ok bool) bool { return ok }
