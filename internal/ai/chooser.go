package ai

import (
	"math/rand"
	"sort"
)

// Chooser defines an interface for selecting a single card from a list of
// options. Every intentional random tie-break in the decision policy goes
// through a Chooser, so outcomes are reproducible under test by swapping in
// the deterministic implementation.
type Chooser interface {
	Choose(cards []string) string
}

// RandomChooser picks uniformly using an injected source.
type RandomChooser struct {
	rand *rand.Rand
}

func NewRandomChooser(rand *rand.Rand) *RandomChooser {
	return &RandomChooser{rand: rand}
}

func (r *RandomChooser) Choose(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return cards[r.rand.Intn(len(cards))]
}

// DeterministicChooser always picks the first card alphabetically. Used for
// predictable testing.
type DeterministicChooser struct{}

func (d *DeterministicChooser) Choose(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	sorted := append([]string(nil), cards...)
	sort.Strings(sorted)
	return sorted[0]
}
