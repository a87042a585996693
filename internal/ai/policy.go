package ai

import (
	"sort"

	"github.com/sirupsen/logrus"

	"cluedo-manor/internal/belief"
	"cluedo-manor/internal/board"
	"cluedo-manor/internal/config"
	"cluedo-manor/internal/path"
)

// Policy chooses suggestion contents, movement targets, and the
// card-to-show. One policy type, parameterized by an injected Chooser for
// tie-breaks, instead of a zoo of strategy variants.
type Policy struct {
	cfg     *config.GameConfig
	chooser Chooser
	log     logrus.FieldLogger
}

func NewPolicy(cfg *config.GameConfig, chooser Chooser, log logrus.FieldLogger) *Policy {
	return &Policy{cfg: cfg, chooser: chooser, log: log}
}

// PickCard selects a suspect or weapon to name: a solution candidate of the
// category is preferred unconditionally; otherwise the tracked card with the
// fewest possible holders, ties broken by the chooser. No travel is required
// to name these, so there is no reachability step.
func (p *Policy) PickCard(store *belief.Store, cat config.CardCategory) string {
	if card, ok := store.CandidateForCategory(cat); ok {
		return card
	}
	best := p.minHolderSubset(store, p.cfg.CardListForCategory(cat))
	if len(best) == 0 {
		// Everything of this category is resolved; name anything.
		return p.chooser.Choose(p.cfg.CardListForCategory(cat))
	}
	return p.chooser.Choose(best)
}

// PickTargetRoom selects the room to travel toward and the path there.
// A candidate room is preferred unconditionally. Otherwise, among tracked
// rooms with the minimum holder count, the one with the shortest path wins;
// if none of them are reachable the lexicographically first tied room is
// returned with a nil path and the agent stays put this turn.
func (p *Policy) PickTargetRoom(store *belief.Store, finder *path.Finder, from board.Position) (string, []path.Action) {
	if room, ok := store.CandidateForCategory(config.CategoryRoom); ok {
		return room, finder.FindPath(from, room)
	}

	best := p.minHolderSubset(store, p.cfg.Rooms)
	if len(best) == 0 {
		best = append([]string(nil), p.cfg.Rooms...)
	}
	sort.Strings(best)

	var (
		bestRoom string
		bestPath []path.Action
	)
	for _, room := range best {
		pth := finder.FindPath(from, room)
		if pth == nil {
			continue
		}
		if bestPath == nil || len(pth) < len(bestPath) {
			bestRoom, bestPath = room, pth
		}
	}
	if bestPath == nil {
		p.log.Debugf("no tied room reachable, falling back to %s", best[0])
		return best[0], nil
	}
	return bestRoom, bestPath
}

// ChooseCardToShow picks from the intersection of the suggestion and the
// hand. A card already shown to any player is preferred, minimizing new
// information disclosed; otherwise the choice is uniform among the matches.
func (p *Policy) ChooseCardToShow(s config.Suggestion, hand, shownBefore map[string]struct{}) string {
	var matches, repeats []string
	for _, card := range s.Cards() {
		if _, held := hand[card]; !held {
			continue
		}
		matches = append(matches, card)
		if _, seen := shownBefore[card]; seen {
			repeats = append(repeats, card)
		}
	}
	if len(repeats) > 0 {
		return p.chooser.Choose(repeats)
	}
	return p.chooser.Choose(matches)
}

// minHolderSubset returns the tracked cards from list whose holder sets are
// smallest.
func (p *Policy) minHolderSubset(store *belief.Store, list []string) []string {
	min := -1
	for _, card := range list {
		if n := store.HolderCount(card); n >= 0 && (min < 0 || n < min) {
			min = n
		}
	}
	if min < 0 {
		return nil
	}
	var best []string
	for _, card := range list {
		if store.HolderCount(card) == min {
			best = append(best, card)
		}
	}
	return best
}
