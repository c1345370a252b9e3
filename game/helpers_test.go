package game

import (
	"testing"
	"time"

	"github.com/minaorangina/klondike/deck"
	"github.com/stretchr/testify/require"
)

func up(r deck.Rank, s deck.Suit) deck.Card {
	return deck.NewCard(r, s).Turned(true)
}

func down(r deck.Rank, s deck.Suit) deck.Card {
	return deck.NewCard(r, s)
}

// layout describes a hand-built position.
// foundations maps a suit to its top rank.
type layout struct {
	tableau     [NumColumns][]deck.Card
	foundations map[deck.Suit]deck.Rank
	waste       []deck.Card
}

// buildGame places the given cards and puts every other card face down in the stock
func buildGame(t *testing.T, l layout) *Game {
	t.Helper()

	g := newGame("test-game", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	used := map[int]bool{}
	place := func(p *Pile, cards ...deck.Card) {
		for _, c := range cards {
			require.False(t, used[c.Index()], "%s placed twice", c)
			used[c.Index()] = true
			p.push(c)
		}
	}

	for i, column := range l.tableau {
		place(g.tableau[i], column...)
	}
	for suit, top := range l.foundations {
		for r := deck.Ace; r <= top; r++ {
			place(g.foundations[suit], up(r, suit))
		}
	}
	place(g.waste, l.waste...)
	for _, c := range deck.New() {
		if !used[c.Index()] {
			place(g.stock, c)
		}
	}

	require.NoError(t, g.verify())
	g.settle()
	return g
}

func assertConserved(t *testing.T, g *Game) {
	t.Helper()
	require.NoError(t, g.verify())
}

func allLocations() []Location {
	locs := []Location{StockLocation(), WasteLocation()}
	for i := 0; i < NumColumns; i++ {
		locs = append(locs, TableauLocation(i))
	}
	for _, s := range deck.Suits {
		locs = append(locs, FoundationLocation(s))
	}
	return locs
}

// legalMoves lists every move Validate accepts
func legalMoves(g *Game) []Move {
	moves := []Move{}
	for _, from := range allLocations() {
		for _, to := range allLocations() {
			last := TopCard
			if from.Kind == TableauLoc {
				last = 19
			}
			for idx := TopCard; idx <= last; idx++ {
				m := Move{From: from, To: to, Index: idx}
				if g.Validate(m) == nil {
					moves = append(moves, m)
				}
			}
		}
	}
	return moves
}
