package game

import (
	"fmt"

	"github.com/minaorangina/klondike/deck"
	"github.com/minaorangina/klondike/protocol"
)

func cardState(c deck.Card) protocol.CardState {
	return protocol.CardState{
		Rank:   int(c.Rank()),
		Suit:   c.Suit().ID(),
		FaceUp: c.FaceUp(),
	}
}

func cardStates(p *Pile) []protocol.CardState {
	out := make([]protocol.CardState, 0, p.Len())
	for _, c := range p.cards {
		out = append(out, cardState(c))
	}
	return out
}

func (g *Game) tableauStates() [][]protocol.CardState {
	out := make([][]protocol.CardState, NumColumns)
	for i, p := range g.tableau {
		out[i] = cardStates(p)
	}
	return out
}

func (g *Game) foundationStates() map[string][]protocol.CardState {
	out := make(map[string][]protocol.CardState, NumFoundations)
	for _, suit := range deck.Suits {
		out[suit.ID()] = cardStates(g.foundations[suit])
	}
	return out
}

// State returns a snapshot of the game for rendering
func (g *Game) State() protocol.GameState {
	return protocol.GameState{
		GameID:      g.id,
		Tableau:     g.tableauStates(),
		Foundations: g.foundationStates(),
		Waste:       cardStates(g.waste),
		StockCount:  g.stock.Len(),
		MovesCount:  g.movesCount,
		GameWon:     g.won,
		Stage:       g.stage.String(),
	}
}

// Serialize returns everything needed to rebuild the game with Deserialize
func (g *Game) Serialize() protocol.SavedGame {
	return protocol.SavedGame{
		GameID:      g.id,
		CreatedAt:   g.createdAt,
		Stock:       cardStates(g.stock),
		Waste:       cardStates(g.waste),
		Tableau:     g.tableauStates(),
		Foundations: g.foundationStates(),
		MovesCount:  g.movesCount,
		GameWon:     g.won,
	}
}

// Deserialize rebuilds a game, rejecting data that breaks the rules of a Klondike layout
func Deserialize(data protocol.SavedGame) (*Game, error) {
	if data.GameID == "" {
		return nil, fmt.Errorf("%w: missing game id", ErrCorruptGame)
	}
	if data.MovesCount < 0 {
		return nil, fmt.Errorf("%w: negative moves count %d", ErrCorruptGame, data.MovesCount)
	}
	if len(data.Tableau) != NumColumns {
		return nil, fmt.Errorf("%w: expected %d tableau columns, got %d", ErrCorruptGame, NumColumns, len(data.Tableau))
	}

	g := newGame(data.GameID, data.CreatedAt)
	g.movesCount = data.MovesCount

	if err := fill(g.stock, data.Stock); err != nil {
		return nil, err
	}
	if err := fill(g.waste, data.Waste); err != nil {
		return nil, err
	}
	for i, column := range data.Tableau {
		if err := fill(g.tableau[i], column); err != nil {
			return nil, err
		}
	}
	for id, cards := range data.Foundations {
		suit, err := deck.ParseSuit(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptGame, err)
		}
		if err := fill(g.foundations[suit], cards); err != nil {
			return nil, err
		}
	}

	if err := g.verify(); err != nil {
		return nil, err
	}

	g.settle()
	if g.won != data.GameWon {
		return nil, fmt.Errorf("%w: game_won is %t but foundations say %t", ErrCorruptGame, data.GameWon, g.won)
	}

	return g, nil
}

func fill(p *Pile, states []protocol.CardState) error {
	for _, s := range states {
		suit, err := deck.ParseSuit(s.Suit)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptGame, err)
		}
		c, err := deck.MakeCard(deck.Rank(s.Rank), suit, s.FaceUp)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptGame, err)
		}
		p.push(c)
	}
	return nil
}

// verify checks the invariants every reachable game satisfies
func (g *Game) verify() error {
	seen := make(map[int]bool, deck.Size)
	count := 0
	record := func(p *Pile) error {
		for _, c := range p.cards {
			if seen[c.Index()] {
				return fmt.Errorf("%w: %s appears twice", ErrCorruptGame, c)
			}
			seen[c.Index()] = true
			count++
		}
		return nil
	}

	piles := []*Pile{g.stock, g.waste}
	piles = append(piles, g.tableau[:]...)
	piles = append(piles, g.foundations[:]...)
	for _, p := range piles {
		if err := record(p); err != nil {
			return err
		}
	}
	if count != deck.Size {
		return fmt.Errorf("%w: expected %d cards, found %d", ErrCorruptGame, deck.Size, count)
	}

	for _, c := range g.stock.cards {
		if c.FaceUp() {
			return fmt.Errorf("%w: %s is face up in the stock", ErrCorruptGame, c)
		}
	}
	for _, c := range g.waste.cards {
		if !c.FaceUp() {
			return fmt.Errorf("%w: %s is face down in the waste", ErrCorruptGame, c)
		}
	}

	for i, p := range g.tableau {
		exposed := false
		for _, c := range p.cards {
			if c.FaceUp() {
				exposed = true
			} else if exposed {
				return fmt.Errorf("%w: face-down %s above face-up cards in column %d", ErrCorruptGame, c, i)
			}
		}
	}

	for _, suit := range deck.Suits {
		for i, c := range g.foundations[suit].cards {
			if c.Suit() != suit || c.Rank() != deck.Rank(i+1) || !c.FaceUp() {
				return fmt.Errorf("%w: %s out of place in the %s foundation", ErrCorruptGame, c, suit)
			}
		}
	}

	return nil
}
