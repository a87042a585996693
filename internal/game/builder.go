package game

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"cluedo-manor/internal/ai"
	"cluedo-manor/internal/board"
	"cluedo-manor/internal/config"
	"cluedo-manor/internal/events"
	"cluedo-manor/internal/path"
	"cluedo-manor/internal/player"
)

// Builder provides a step-by-step API for constructing a Game.
type Builder struct {
	cfg          *config.GameConfig
	eventManager *events.Manager
	log          *logrus.Logger
	rand         *rand.Rand
	numPassive   int
	numAI        int
	board        *board.Board
	solution     *config.Suggestion
	chooser      func() ai.Chooser
}

// NewBuilder creates a Builder with its required dependencies.
func NewBuilder(cfg *config.GameConfig, logger *logrus.Logger, rand *rand.Rand) *Builder {
	return &Builder{
		cfg:          cfg,
		log:          logger,
		rand:         rand,
		eventManager: events.NewManager(),
	}
}

// EventManager exposes the bus so callers can subscribe renderers before Build.
func (b *Builder) EventManager() *events.Manager {
	return b.eventManager
}

// WithAISeats sets the number of reasoning seats.
func (b *Builder) WithAISeats(n int) *Builder {
	b.numAI = n
	return b
}

// WithPassiveSeats sets the number of Inactive seats: they are dealt cards
// and refute, but never take turns.
func (b *Builder) WithPassiveSeats(n int) *Builder {
	b.numPassive = n
	return b
}

// WithBoard overrides the classic board, mainly for synthetic test boards.
func (b *Builder) WithBoard(bd *board.Board) *Builder {
	b.board = bd
	return b
}

// WithSolution pins the hidden triple instead of drawing it. Test hook.
func (b *Builder) WithSolution(s config.Suggestion) *Builder {
	b.solution = &s
	return b
}

// WithChooser overrides the per-agent chooser factory. Test hook.
func (b *Builder) WithChooser(factory func() ai.Chooser) *Builder {
	b.chooser = factory
	return b
}

// Build constructs the game: seating, board placement, solution draw, deal,
// and knowledge-base initialization for every reasoning seat.
func (b *Builder) Build() (*Game, error) {
	total := b.numPassive + b.numAI
	if total < 2 || total > len(b.cfg.Suspects) {
		return nil, errors.New("invalid number of players")
	}

	names := append([]string(nil), b.cfg.Suspects[:total]...)
	b.rand.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	bd := b.board
	if bd == nil {
		bd = board.NewClassic(b.log)
	}
	finder := path.NewFinder(bd)

	g := &Game{
		Config:       b.cfg,
		Board:        bd,
		EventManager: b.eventManager,
		finder:       finder,
		log:          b.log,
		rand:         b.rand,
	}

	solution, hands := b.deal(names)
	g.solution = solution

	handSizes := make(map[string]int, total)
	for name, hand := range hands {
		handSizes[name] = len(hand)
	}

	for i, name := range names {
		var agent player.Agent
		status := player.StatusActive
		if i < b.numPassive {
			agent = player.NewPassiveAgent(name)
			status = player.StatusInactive
		} else {
			agent = ai.NewAgent(name, b.cfg.DeepCopy(), finder, b.newChooser(), b.log)
		}
		namesCopy := append([]string(nil), names...)
		agent.Setup(namesCopy, handSizes)
		agent.ReceiveHand(hands[name])

		seat := &Seat{ID: i, Name: name, Status: status, Hand: hands[name], Agent: agent}
		g.Seats = append(g.Seats, seat)

		if err := bd.AddPlayer(seat.ID, b.startPosition(bd, name)); err != nil {
			return nil, err
		}
		b.log.Debugf("%s hand: %v", name, hands[name])
	}

	b.log.Debugf("ground truth initialized, solution: %s", solution)
	b.eventManager.Publish(events.GameReadyEvent{PlayerNames: names})
	return g, nil
}

func (b *Builder) newChooser() ai.Chooser {
	if b.chooser != nil {
		return b.chooser()
	}
	return ai.NewRandomChooser(rand.New(rand.NewSource(b.rand.Int63())))
}

// deal draws the solution (one card per category unless pinned) and deals
// the rest round-robin. Hands may be uneven when the deck does not divide;
// hand sizes are public and feed each agent's per-player quota.
func (b *Builder) deal(names []string) (config.Suggestion, map[string][]string) {
	deck := append([]string(nil), b.cfg.AllCards...)
	b.rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	var solution config.Suggestion
	var cardsToDeal []string
	if b.solution != nil {
		solution = *b.solution
		for _, card := range deck {
			if card != solution.Suspect && card != solution.Weapon && card != solution.Room {
				cardsToDeal = append(cardsToDeal, card)
			}
		}
	} else {
		drawn := make(map[config.CardCategory]bool)
		for i := len(deck) - 1; i >= 0; i-- {
			card := deck[i]
			cat := b.cfg.CardToType[card]
			if !drawn[cat] {
				drawn[cat] = true
				switch cat {
				case config.CategorySuspect:
					solution.Suspect = card
				case config.CategoryWeapon:
					solution.Weapon = card
				case config.CategoryRoom:
					solution.Room = card
				}
			} else {
				cardsToDeal = append(cardsToDeal, card)
			}
		}
	}
	sort.Strings(cardsToDeal)

	hands := make(map[string][]string, len(names))
	for i, card := range cardsToDeal {
		name := names[i%len(names)]
		hands[name] = append(hands[name], card)
	}
	return solution, hands
}

// startPosition returns the seat's board starting spot: the configured
// hallway cell when one exists, otherwise the first room.
func (b *Builder) startPosition(bd *board.Board, name string) board.Position {
	if rc, ok := b.cfg.StartPositions[name]; ok {
		return board.HallwayPosition(rc[0], rc[1])
	}
	rooms := bd.Rooms()
	return board.RoomPosition(rooms[0])
}
