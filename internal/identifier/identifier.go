// Package identifier derives bounded, collision-free dashboard UIDs.
package identifier

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

const (
	// MaxLength is the longest UID the dashboard store accepts.
	MaxLength = 40
	// MinSuffixReserve is the room kept for a suffix shorter than this.
	MinSuffixReserve = 5
	// DefaultAttempts caps the shuffle loop.
	DefaultAttempts = 10_000
)

var (
	ErrExhausted       = errors.New("identifier: no free identifier after shuffling")
	ErrSuffixTooLong   = errors.New("identifier: suffix leaves no room for the original")
	ErrEmptyIdentifier = errors.New("identifier: empty original")
)

// Set holds issued identifiers. It is owned by the caller and threaded
// through successive Allocate calls.
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(id)
	}

	return s
}

func (s Set) Add(id string) { s[id] = struct{}{} }

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Allocator derives identifiers. It is not safe for concurrent use.
type Allocator struct {
	maxLength int
	attempts  int
	rnd       *rand.Rand
}

type Option func(*Allocator)

// WithSeed makes the shuffle sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(a *Allocator) { a.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithAttempts(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.attempts = n
		}
	}
}

func WithMaxLength(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.maxLength = n
		}
	}
}

func New(opts ...Option) *Allocator {
	a := &Allocator{maxLength: MaxLength, attempts: DefaultAttempts}
	for _, opt := range opts {
		opt(a)
	}

	if a.rnd == nil {
		a.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return a
}

// Allocate returns original truncated and suffixed with "_suffix". The
// candidate is shuffled while it is in issued or equals the original cut to
// the maximum length. Allocate does not add the result to issued.
func (a *Allocator) Allocate(original, suffix string, issued Set) (string, error) {
	if original == "" {
		return "", ErrEmptyIdentifier
	}

	keep := a.maxLength - max(len([]rune(suffix)), MinSuffixReserve)
	if tail := 1 + len([]rune(suffix)); keep+tail > a.maxLength {
		keep = a.maxLength - tail
	}

	if keep <= 0 {
		return "", fmt.Errorf("%w: %q", ErrSuffixTooLong, suffix)
	}

	candidate := truncate(original, keep) + "_" + suffix
	reserved := truncate(original, a.maxLength)

	free := func(id string) bool { return id != reserved && !issued.Has(id) }
	if free(candidate) {
		return candidate, nil
	}

	runes := []rune(candidate)
	for range a.attempts {
		a.rnd.Shuffle(len(runes), func(i, j int) { runes[i], runes[j] = runes[j], runes[i] })

		if id := string(runes); free(id) {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: %q with suffix %q after %d attempts", ErrExhausted, original, suffix, a.attempts)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
