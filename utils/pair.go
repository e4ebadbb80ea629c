package utils

import "strings"

// SplitPair splits s at the first sep and trims both halves. Without sep
// the second half is empty.
func SplitPair(s, sep string) (first, second string) {
	first, second, _ = strings.Cut(s, sep)
	return strings.TrimSpace(first), strings.TrimSpace(second)
}
