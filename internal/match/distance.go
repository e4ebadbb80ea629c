package match

// Distance is the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j, cb := range rb {
		diag := row[0]
		row[0] = j + 1

		for i, ca := range ra {
			above := row[i+1]

			cost := 1
			if ca == cb {
				cost = 0
			}

			row[i+1] = min(above+1, row[i]+1, diag+cost)
			diag = above
		}
	}

	return row[len(ra)]
}

// Similarity maps the distance of a and b to [0, 1], 1 meaning equal.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(longest)
}
