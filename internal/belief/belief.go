// Package belief implements the per-agent knowledge base: a
// constraint-propagation store that converts public suggestion/refutation
// events into shrinking possible-holder sets per card.
//
// A card lives in exactly one of three states: tracked (a non-empty set of
// players who might hold it), known (resolved to a single owner), or a
// solution candidate (its holder set emptied out, so it must be behind the
// envelope). Candidacy is terminal; a later contradictory observation is
// surfaced through Conflict rather than silently repaired.
package belief

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"cluedo-manor/internal/config"
)

// Observation is one public suggestion/refutation event as seen by a single
// agent. Asked lists the players asked in seating order from the suggester;
// when someone refuted, the revealer is the last entry of Asked. Shown is
// empty unless this agent was the suggester (or the revealer) — card
// identity is private to those two.
type Observation struct {
	Suggester  string
	Suggestion config.Suggestion
	Asked      []string
	Revealer   string
	Shown      string
}

// Store is one agent's knowledge base. It is single-writer and
// strictly event-ordered: feeding the same observation sequence into two
// freshly initialized stores yields identical final states.
type Store struct {
	self       string
	cfg        *config.GameConfig
	beliefs    map[string]map[string]struct{}
	known      map[string]string
	knownCount map[string]int
	quota      map[string]int
	candidates map[string]struct{}
	log        logrus.FieldLogger
}

// NewStore initializes the knowledge base after dealing. Every card starts
// tracked with all opponents as possible holders; the agent's own hand is
// then marked owned through the same update path used at runtime, which
// guarantees own-hand cards are never tracked (the precondition for the
// unrefuted-self-suggestion rule). quota maps each player to their dealt
// hand size; once that many of a player's cards are known, the player is
// purged from every remaining holder set.
func NewStore(cfg *config.GameConfig, self string, players []string, hand []string, quota map[string]int, log logrus.FieldLogger) *Store {
	s := &Store{
		self:       self,
		cfg:        cfg,
		beliefs:    make(map[string]map[string]struct{}, len(cfg.AllCards)),
		known:      make(map[string]string),
		knownCount: make(map[string]int),
		quota:      make(map[string]int, len(quota)),
		candidates: make(map[string]struct{}),
		log:        log,
	}
	for p, n := range quota {
		s.quota[p] = n
	}
	for _, card := range cfg.AllCards {
		holders := make(map[string]struct{}, len(players))
		for _, name := range players {
			if name != self {
				holders[name] = struct{}{}
			}
		}
		s.beliefs[card] = holders
	}
	for _, card := range hand {
		s.MarkOwned(card, self)
	}
	return s
}

// MarkOwned records that owner holds card. This is the only way a card
// becomes known: at init for the own hand, and at runtime when a card is
// shown to this agent.
func (s *Store) MarkOwned(card, owner string) {
	if !s.cfg.IsCard(card) {
		s.log.Errorf("belief: MarkOwned called with invalid card %q", card)
		return
	}
	if prev, ok := s.known[card]; ok {
		if prev != owner {
			s.log.Warnf("belief: %q reassigned from %s to %s", card, prev, owner)
			s.known[card] = owner
		}
		return
	}
	s.known[card] = owner
	delete(s.beliefs, card)
	s.log.Debugf("belief: learned %q is with %s", card, owner)

	s.knownCount[owner]++
	if q, ok := s.quota[owner]; ok && s.knownCount[owner] >= q {
		s.purgeHolder(owner)
	}
}

// Observe applies the update rules for one suggestion/refutation event.
// Events must be fed in the exact order they occurred.
func (s *Store) Observe(obs Observation) {
	if obs.Revealer != "" {
		s.observeRefuted(obs)
	} else {
		s.observeUnrefuted(obs)
	}
}

// observeRefuted: every player asked strictly before the revealer passed,
// so they hold none of the suggested cards. The exact shown card is learned
// only when it was shown to this agent.
func (s *Store) observeRefuted(obs Observation) {
	var passed []string
	for _, name := range obs.Asked {
		if name == obs.Revealer {
			break
		}
		passed = append(passed, name)
	}
	for _, card := range obs.Suggestion.Cards() {
		if _, known := s.known[card]; known {
			continue
		}
		for _, name := range passed {
			s.removeHolder(card, name)
		}
	}
	if obs.Suggester == s.self && obs.Shown != "" {
		s.MarkOwned(obs.Shown, obs.Revealer)
	}
}

// observeUnrefuted: nobody could show a card. A self-suggestion excludes the
// own hand by construction, so all three cards must be the solution. For
// another player's suggestion only the suggester can still hold them.
func (s *Store) observeUnrefuted(obs Observation) {
	for _, card := range obs.Suggestion.Cards() {
		if _, known := s.known[card]; known {
			continue
		}
		holders, tracked := s.beliefs[card]
		if !tracked {
			continue
		}
		if obs.Suggester == s.self {
			for name := range holders {
				delete(holders, name)
			}
		} else {
			for name := range holders {
				if name != obs.Suggester {
					delete(holders, name)
				}
			}
		}
		if len(holders) == 0 {
			s.promote(card)
		}
	}
}

// removeHolder drops a player from a card's holder set, promoting the card
// to solution candidate if the set empties.
func (s *Store) removeHolder(card, player string) {
	holders, tracked := s.beliefs[card]
	if !tracked {
		return
	}
	if _, ok := holders[player]; !ok {
		return
	}
	delete(holders, player)
	if len(holders) == 0 {
		s.promote(card)
	}
}

// purgeHolder removes a fully-discovered player from every remaining holder
// set; any set emptied as a result promotes its card.
func (s *Store) purgeHolder(player string) {
	s.log.Debugf("belief: all of %s's cards known, purging from holder sets", player)
	for _, card := range s.trackedCards() {
		s.removeHolder(card, player)
	}
}

func (s *Store) trackedCards() []string {
	cards := make([]string, 0, len(s.beliefs))
	for card := range s.beliefs {
		cards = append(cards, card)
	}
	sort.Strings(cards)
	return cards
}

// promote migrates a card from tracked to solution candidate. Terminal.
func (s *Store) promote(card string) {
	delete(s.beliefs, card)
	s.candidates[card] = struct{}{}
	s.log.Infof("belief: no holder left for %q, marking as solution candidate", card)
}

// --- Queries ---

// Tracked reports whether card still has a live holder set.
func (s *Store) Tracked(card string) bool {
	_, ok := s.beliefs[card]
	return ok
}

// Holders returns the sorted possible holders of a tracked card.
func (s *Store) Holders(card string) []string {
	holders, ok := s.beliefs[card]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(holders))
	for name := range holders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HolderCount returns the size of a tracked card's holder set, or -1 if the
// card is not tracked.
func (s *Store) HolderCount(card string) int {
	holders, ok := s.beliefs[card]
	if !ok {
		return -1
	}
	return len(holders)
}

// Owner returns the resolved owner of a known card.
func (s *Store) Owner(card string) (string, bool) {
	owner, ok := s.known[card]
	return owner, ok
}

// IsCandidate reports whether card has been inferred to be in the solution.
func (s *Store) IsCandidate(card string) bool {
	_, ok := s.candidates[card]
	return ok
}

// Candidates returns the sorted solution candidates.
func (s *Store) Candidates() []string {
	cards := make([]string, 0, len(s.candidates))
	for card := range s.candidates {
		cards = append(cards, card)
	}
	sort.Strings(cards)
	return cards
}

// CandidateForCategory returns the solution candidate of the given category,
// if exactly one exists.
func (s *Store) CandidateForCategory(cat config.CardCategory) (string, bool) {
	var found string
	n := 0
	for card := range s.candidates {
		if s.cfg.CardToType[card] == cat {
			found = card
			n++
		}
	}
	if n == 1 {
		return found, true
	}
	return "", false
}

// Conflict reports an inference contradiction: two solution candidates of
// the same category can never both be true.
func (s *Store) Conflict() bool {
	seen := make(map[config.CardCategory]int)
	for card := range s.candidates {
		seen[s.cfg.CardToType[card]]++
	}
	for _, n := range seen {
		if n > 1 {
			return true
		}
	}
	return false
}

// ShouldAccuse reports accusation readiness: exactly three candidates that
// partition into one card per category. A mismatched partition signals a
// conflict and is never accusation-ready.
func (s *Store) ShouldAccuse() bool {
	if len(s.candidates) != 3 {
		return false
	}
	_, ok := s.Accusation()
	return ok
}

// Accusation assembles the candidate triple. ok is false unless the
// candidates form exactly one card per category.
func (s *Store) Accusation() (config.Suggestion, bool) {
	var acc config.Suggestion
	counts := make(map[config.CardCategory]int)
	for card := range s.candidates {
		switch s.cfg.CardToType[card] {
		case config.CategorySuspect:
			acc.Suspect = card
		case config.CategoryWeapon:
			acc.Weapon = card
		case config.CategoryRoom:
			acc.Room = card
		}
		counts[s.cfg.CardToType[card]]++
	}
	ok := len(s.candidates) == 3 && counts[config.CategorySuspect] == 1 &&
		counts[config.CategoryWeapon] == 1 && counts[config.CategoryRoom] == 1
	return acc, ok
}

// Fingerprint serializes the full store state deterministically. Two stores
// fed identical event sequences produce identical fingerprints.
func (s *Store) Fingerprint() string {
	var sb strings.Builder
	for _, card := range s.cfg.AllCards {
		switch {
		case s.Tracked(card):
			fmt.Fprintf(&sb, "%s?%s\n", card, strings.Join(s.Holders(card), ","))
		case s.IsCandidate(card):
			fmt.Fprintf(&sb, "%s!\n", card)
		default:
			fmt.Fprintf(&sb, "%s=%s\n", card, s.known[card])
		}
	}
	counts := make([]string, 0, len(s.knownCount))
	for name, n := range s.knownCount {
		counts = append(counts, fmt.Sprintf("%s:%d", name, n))
	}
	sort.Strings(counts)
	sb.WriteString(strings.Join(counts, ";"))
	return sb.String()
}
