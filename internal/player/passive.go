package player

import (
	"sort"

	"cluedo-manor/internal/belief"
	"cluedo-manor/internal/board"
	"cluedo-manor/internal/config"
	"cluedo-manor/internal/path"
)

// PassiveAgent backs an Inactive seat: it holds cards and refutes when
// asked, but never takes a turn, never reasons, never accuses.
type PassiveAgent struct {
	name string
	hand map[string]struct{}
}

func NewPassiveAgent(name string) *PassiveAgent {
	return &PassiveAgent{name: name, hand: make(map[string]struct{})}
}

func (p *PassiveAgent) Name() string { return p.name }

func (p *PassiveAgent) Hand() []string {
	cards := make([]string, 0, len(p.hand))
	for card := range p.hand {
		cards = append(cards, card)
	}
	sort.Strings(cards)
	return cards
}

func (p *PassiveAgent) Setup(playerNames []string, handSizes map[string]int) {}

func (p *PassiveAgent) ReceiveHand(cards []string) {
	for _, card := range cards {
		p.hand[card] = struct{}{}
	}
}

func (p *PassiveAgent) PlanTurn(pos board.Position) (string, []path.Action) {
	return "", nil
}

func (p *PassiveAgent) Suggest(room string) config.Suggestion {
	return config.Suggestion{}
}

func (p *PassiveAgent) ShouldAccuse() bool { return false }

func (p *PassiveAgent) Accuse() config.Suggestion {
	panic("player: Accuse called on a passive agent")
}

// ChooseCardToShow shows the first matching card in sorted order.
func (p *PassiveAgent) ChooseCardToShow(s config.Suggestion) string {
	var matches []string
	for _, card := range s.Cards() {
		if _, ok := p.hand[card]; ok {
			matches = append(matches, card)
		}
	}
	if len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}

func (p *PassiveAgent) ObserveSuggestion(suggester string, s config.Suggestion) {}

func (p *PassiveAgent) ObserveRefutation(obs belief.Observation) {}
