package game

import (
	"time"

	"github.com/minaorangina/klondike/deck"
)

const (
	NumColumns     = 7
	NumFoundations = 4
	foundationSize = 13
)

// TopCard selects only the top card of a pile in MoveCard
const TopCard = -1

// Stage represents the main stages in the game
type Stage int

const (
	Dealing Stage = iota
	InProgress
	Won
)

var stageNames = []string{"dealing", "in_progress", "won"}

func (s Stage) String() string {
	if s < Dealing || s > Won {
		return ""
	}
	return stageNames[s]
}

// Game is a single game of Klondike.
// It is not safe for concurrent use.
type Game struct {
	id          string
	createdAt   time.Time
	stage       Stage
	stock       *Pile
	waste       *Pile
	tableau     [NumColumns]*Pile
	foundations [NumFoundations]*Pile
	movesCount  int
	won         bool
}

func newGame(id string, createdAt time.Time) *Game {
	g := &Game{
		id:        id,
		createdAt: createdAt,
		stage:     Dealing,
		stock:     newPile(StockPile),
		waste:     newPile(WastePile),
	}
	for i := range g.tableau {
		g.tableau[i] = newPile(TableauPile)
	}
	for i := range g.foundations {
		g.foundations[i] = newPile(FoundationPile)
	}
	return g
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Game) MovesCount() int {
	return g.movesCount
}

// Won reports whether every foundation is complete
func (g *Game) Won() bool {
	return g.won
}

func (g *Game) Stage() Stage {
	return g.stage
}

func (g *Game) Stock() *Pile {
	return g.stock
}

func (g *Game) Waste() *Pile {
	return g.waste
}

// Tableau returns column i, or nil if i is out of range
func (g *Game) Tableau(i int) *Pile {
	if i < 0 || i >= NumColumns {
		return nil
	}
	return g.tableau[i]
}

func (g *Game) Foundation(suit deck.Suit) *Pile {
	if suit.ID() == "" {
		return nil
	}
	return g.foundations[suit]
}

// pile resolves a valid location to its pile
func (g *Game) pile(loc Location) *Pile {
	switch loc.Kind {
	case StockLoc:
		return g.stock
	case WasteLoc:
		return g.waste
	case TableauLoc:
		return g.tableau[loc.Column]
	case FoundationLoc:
		return g.foundations[loc.Suit]
	}
	return nil
}

// IsWon reports whether all four foundations hold thirteen cards
func IsWon(g *Game) bool {
	for _, f := range g.foundations {
		if f.Len() != foundationSize {
			return false
		}
	}
	return true
}

func (g *Game) settle() {
	g.won = IsWon(g)
	if g.won {
		g.stage = Won
	} else {
		g.stage = InProgress
	}
}
