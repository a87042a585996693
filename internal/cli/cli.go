package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"cluedo-manor/internal/ai"
	"cluedo-manor/internal/belief"
	"cluedo-manor/internal/config"
	"cluedo-manor/internal/game"
)

// CLI manages all command-line interactions.
type CLI struct {
	log  *logrus.Logger
	line *liner.State
}

// NewCLI creates a new command-line interface manager.
func NewCLI(log *logrus.Logger) *CLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &CLI{
		log:  log,
		line: line,
	}
}

// Run is the main entry point for the CLI application.
func (c *CLI) Run(args []string, cfg *config.GameConfig, rand *rand.Rand) error {
	defer c.line.Close()
	if len(args) < 1 {
		c.printUsage()
		return errors.New("no command provided")
	}

	switch args[0] {
	case "detective":
		return c.runDetectiveMode(cfg)
	case "start":
		if len(args) != 3 {
			c.printUsage()
			return errors.New("invalid arguments for 'start' command")
		}
		numPassive, _ := strconv.Atoi(args[1])
		numAI, _ := strconv.Atoi(args[2])
		return c.runSimulationMode(cfg, numPassive, numAI, rand)
	default:
		c.printUsage()
		return fmt.Errorf("unknown command '%s'", args[0])
	}
}

func (c *CLI) runSimulationMode(cfg *config.GameConfig, numPassive, numAI int, rand *rand.Rand) error {
	C.Header.Println("--- Running Fast Simulation ---")

	builder := game.NewBuilder(cfg, c.log, rand)
	renderer := &SimulationRenderer{}
	builder.EventManager().Subscribe(renderer)

	g, err := builder.WithPassiveSeats(numPassive).WithAISeats(numAI).Build()
	if err != nil {
		return fmt.Errorf("failed to build game: %w", err)
	}

	var names []string
	for _, seat := range g.Seats {
		names = append(names, seat.Name)
	}
	RenderBoard(g.Board, names)

	winnerName, _ := g.RunSimulation()

	C.Header.Println("\n--- Final Board ---")
	RenderBoard(g.Board, names)

	if winnerName != "" {
		if seat := g.SeatByName(winnerName); seat != nil {
			DisplayAINotes(seat)
		}
	}
	return nil
}

// detectiveSession holds the co-pilot state for a real-life game.
type detectiveSession struct {
	cfg     *config.GameConfig
	store   *belief.Store
	policy  *ai.Policy
	players []string
	self    string
}

func (c *CLI) runDetectiveMode(cfg *config.GameConfig) error {
	C.Info.Println("\n--- Starting Detective Mode Co-Pilot ---")
	numPlayers := c.promptForInt(fmt.Sprintf("How many players are in the real game? (2-%d): ", len(cfg.Suspects)), 2, len(cfg.Suspects))
	var playerNames []string
	for i := 0; i < numPlayers; i++ {
		name := c.promptForString(fmt.Sprintf("Enter name for Player %d (in seating order): ", i+1))
		playerNames = append(playerNames, name)
	}
	myPlayerName := c.promptForSelection("Which player are you?", playerNames)
	C.Info.Println("\nSelect the cards in your hand. Type 'done' when finished.")
	myHand := c.promptForCards(cfg, true, 0)

	quota := map[string]int{myPlayerName: len(myHand)}
	for _, name := range playerNames {
		if name == myPlayerName {
			continue
		}
		quota[name] = c.promptForInt(fmt.Sprintf("How many cards does %s hold? ", name), 1, len(cfg.AllCards))
	}

	session := &detectiveSession{
		cfg:     cfg,
		store:   belief.NewStore(cfg, myPlayerName, playerNames, myHand, quota, c.log),
		policy:  ai.NewPolicy(cfg.DeepCopy(), ai.NewRandomChooser(rand.New(rand.NewSource(1))), c.log),
		players: playerNames,
		self:    myPlayerName,
	}

	C.Info.Println("\nDetective Mode is active! Your co-pilot is ready.")
	RenderNotes(session.self, session.cfg, session.players, session.store)
	c.printDetectiveHelp()

	for {
		input, err := c.line.Prompt("(detective) ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				C.Info.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("error reading line: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		c.line.AppendHistory(input)
		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "log", "l":
			c.handleLogCommand(session)
		case "reveal", "r":
			c.handleRevealCommand(session)
		case "suggest", "s":
			c.handleSuggestCommand(session)
		case "accuse", "a":
			c.handleAccuseCommand(session)
		case "notes", "n":
			RenderNotes(session.self, session.cfg, session.players, session.store)
		case "hand", "ha":
			c.handleHandCommand(session)
		case "help", "h":
			c.printDetectiveHelp()
		case "quit", "q":
			C.Info.Println("Exiting detective mode.")
			return nil
		default:
			C.Warn.Printf("Unknown command '%s'. Type 'help' for a list of commands.\n", cmd)
		}
	}
}

func (c *CLI) handleLogCommand(s *detectiveSession) {
	C.Info.Println("\n--- Log a Game Turn ---")
	suggester := c.promptForSelection("Who made the suggestion?", s.players)
	C.Info.Println("What 3 cards were suggested?")
	suggestionCards := c.promptForCards(s.cfg, false, 3)
	suggestion, err := s.suggestionFromCards(suggestionCards)
	if err != nil {
		C.Warn.Printf("Error: %v\n", err)
		return
	}

	disproverOptions := append([]string(nil), s.players...)
	disproverOptions = append(disproverOptions, "No One")
	disprover := c.promptForSelection("Who disproved the suggestion?", disproverOptions)
	if disprover == "No One" {
		disprover = ""
	}

	obs := belief.Observation{
		Suggester:  suggester,
		Suggestion: suggestion,
		Asked:      s.askedPlayers(suggester, disprover),
		Revealer:   disprover,
	}
	if disprover != "" && suggester == s.self {
		C.Info.Println("What card were you shown?")
		if revealed := c.promptForCards(s.cfg, true, 1); len(revealed) > 0 {
			obs.Shown = revealed[0]
		}
	}
	s.store.Observe(obs)
	C.Info.Println("Turn logged. Here are your updated notes:")
	RenderNotes(s.self, s.cfg, s.players, s.store)
}

func (c *CLI) handleRevealCommand(s *detectiveSession) {
	C.Info.Println("\n--- Log a Revealed Card ---")
	pName := c.promptForSelection("Which player revealed a card?", s.players)
	C.Info.Println("Which card did they reveal?")
	revealed := c.promptForCards(s.cfg, true, 1)
	if len(revealed) == 0 {
		return
	}
	s.store.MarkOwned(revealed[0], pName)
	C.Info.Println("Revealed card logged.")
	RenderNotes(s.self, s.cfg, s.players, s.store)
}

func (c *CLI) handleSuggestCommand(s *detectiveSession) {
	C.Header.Println("\n--- Co-Pilot Suggestion ---")
	suggestion := config.Suggestion{
		Suspect: s.policy.PickCard(s.store, config.CategorySuspect),
		Weapon:  s.policy.PickCard(s.store, config.CategoryWeapon),
		Room:    s.policy.PickCard(s.store, config.CategoryRoom),
	}
	C.Info.Printf("The co-pilot suggests you propose: %s\n", colorizeSuggestionCards(suggestion.Cards()))
}

func (c *CLI) handleAccuseCommand(s *detectiveSession) {
	C.Header.Println("\n--- Accusation Check ---")
	if s.store.Conflict() {
		C.Warn.Println("Warning: the logged observations contradict each other. Re-check your entries.")
	}
	if acc, ok := s.store.Accusation(); ok {
		C.Yes.Printf("The solution is pinned down. Accuse: %s\n", colorizeSuggestionCards(acc.Cards()))
		return
	}
	candidates := s.store.Candidates()
	if len(candidates) == 0 {
		C.Info.Println("No solution candidates confirmed yet. Keep logging turns.")
		return
	}
	C.Info.Printf("Confirmed so far: %s. Not enough for an accusation.\n", colorizeSuggestionCards(candidates))
}

func (c *CLI) handleHandCommand(s *detectiveSession) {
	C.Header.Println("\n--- Your Hand ---")
	for _, card := range s.cfg.AllCards {
		if owner, ok := s.store.Owner(card); ok && owner == s.self {
			C.Info.Println(" - " + ColorizeCard(card))
		}
	}
}

// suggestionFromCards maps three raw cards onto the suspect, weapon and room
// slots, rejecting sets that do not cover each category exactly once.
func (s *detectiveSession) suggestionFromCards(cards []string) (config.Suggestion, error) {
	if len(cards) != 3 {
		return config.Suggestion{}, errors.New("a suggestion must have exactly 3 cards")
	}
	var suggestion config.Suggestion
	seen := make(map[config.CardCategory]bool)
	for _, card := range cards {
		cat := s.cfg.CardToType[card]
		if seen[cat] {
			return config.Suggestion{}, fmt.Errorf("two %s cards in one suggestion", cat)
		}
		seen[cat] = true
		switch cat {
		case config.CategorySuspect:
			suggestion.Suspect = card
		case config.CategoryWeapon:
			suggestion.Weapon = card
		case config.CategoryRoom:
			suggestion.Room = card
		}
	}
	return suggestion, nil
}

// askedPlayers reconstructs the refutation traversal: everyone after the
// suggester in seating order, up to and including the revealer, or all other
// players when nobody could refute.
func (s *detectiveSession) askedPlayers(suggester, revealer string) []string {
	start := 0
	for i, name := range s.players {
		if name == suggester {
			start = i
			break
		}
	}
	var asked []string
	for offset := 1; offset < len(s.players); offset++ {
		name := s.players[(start+offset)%len(s.players)]
		asked = append(asked, name)
		if name == revealer {
			break
		}
	}
	return asked
}
