package match

import (
	"cmp"
	"slices"
	"strings"
)

// MinScore is the lowest score still worth suggesting.
const MinScore = 0.4

// Weights of the score components.
const (
	spellingWeight = 0.8
	wordWeight     = 0.2
)

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64 // in [0, 1], higher is closer
}

// Rank scores every name against target, best first. Equal scores are
// ordered by name.
func Rank(target string, names []string) []Candidate {
	tt := Tokens(target)

	out := make([]Candidate, 0, len(names))
	for _, name := range names {
		nt := Tokens(name)

		spelling := max(
			Similarity(strings.Join(nt, ""), strings.Join(tt, "")),
			Similarity(stem(nt), stem(tt)),
		)

		out = append(out, Candidate{
			Name:  name,
			Score: spelling*spellingWeight + sharedWords(nt, tt)*wordWeight,
		})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	return out
}

// Suggest returns up to n names scoring at least MinScore against target,
// best first.
func Suggest(target string, names []string, n int) []string {
	var out []string

	for _, c := range Rank(target, names) {
		if len(out) >= n || c.Score < MinScore {
			break
		}

		out = append(out, c.Name)
	}

	return out
}

// sharedWords is the Jaccard index of two word sets.
func sharedWords(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	sa, sb := wordSet(a), wordSet(b)

	shared := 0
	for w := range sb {
		if sa[w] {
			shared++
		}
	}

	return float64(shared) / float64(len(sa)+len(sb)-shared)
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}

	return set
}
