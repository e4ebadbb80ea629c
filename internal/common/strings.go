package common

import (
	"cmp"
	"slices"
)

// UnknownStr is printed for values outside a known set.
const UnknownStr = "unknown"

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Merge returns a new map holding base overlaid with each of overlays.
func Merge[M ~map[K]V, K comparable, V any](base M, overlays ...M) M {
	out := make(M, len(base))
	for k, v := range base {
		out[k] = v
	}

	for _, o := range overlays {
		for k, v := range o {
			out[k] = v
		}
	}

	return out
}
