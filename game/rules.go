package game

import (
	"github.com/minaorangina/klondike/deck"
)

// Move describes cards travelling from one pile to another.
// Index is the position of the lowest moving card in the source, or TopCard.
type Move struct {
	From  Location
	To    Location
	Index int
}

// Validate checks a move against the current state without changing it
func (g *Game) Validate(m Move) error {
	_, err := g.check(m)
	return err
}

// check returns the index in the source pile where the moving unit starts
func (g *Game) check(m Move) (int, error) {
	if !m.From.valid() {
		return 0, invalidLocation("source %s", m.From)
	}
	if !m.To.valid() {
		return 0, invalidLocation("destination %s", m.To)
	}

	switch {
	case m.From.Kind == StockLoc:
		return 0, illegal(UnsupportedRoute, "cards leave the stock only by drawing")
	case m.To.Kind == StockLoc || m.To.Kind == WasteLoc:
		return 0, illegal(UnsupportedRoute, "%s is not a destination", m.To)
	case m.From.Equals(m.To):
		return 0, illegal(UnsupportedRoute, "%s is both source and destination", m.From)
	}

	src := g.pile(m.From)
	if src.IsEmpty() {
		return 0, emptySource(m.From)
	}

	start, err := unitStart(src, m.Index)
	if err != nil {
		return 0, err
	}
	unit := src.cards[start:]

	dst := g.pile(m.To)
	switch m.To.Kind {
	case TableauLoc:
		err = canBuildOn(dst, unit[0])
	case FoundationLoc:
		if len(unit) > 1 {
			return 0, illegal(MultiCardToFoundation, "only one card at a time goes to a foundation")
		}
		err = canFound(dst, m.To.Suit, unit[0])
	}
	if err != nil {
		return 0, err
	}

	return start, nil
}

// unitStart checks that the cards from index to the top of src can move together
func unitStart(src *Pile, index int) (int, error) {
	top := src.Len() - 1
	// only tableau columns hold runs; everywhere else the top card moves
	if index == TopCard || src.kind != TableauPile {
		index = top
	}
	if index < 0 || index > top {
		return 0, illegal(EmptyRun, "no card at index %d in %s", index, src.kind)
	}

	for i := index; i <= top; i++ {
		if !src.cards[i].FaceUp() {
			return 0, illegal(FaceDown, "card at index %d is face down", i)
		}
	}
	for i := index; i < top; i++ {
		if !buildsOn(src.cards[i+1], src.cards[i]) {
			return 0, illegal(BrokenRun, "%s does not follow %s", src.cards[i+1], src.cards[i])
		}
	}

	return index, nil
}

// buildsOn reports whether c may sit on top of below in a tableau run
func buildsOn(c, below deck.Card) bool {
	return below.Rank() == c.Rank()+1 && below.Color() != c.Color()
}

func canBuildOn(dst *Pile, c deck.Card) error {
	top, ok := dst.Top()
	if !ok {
		if c.Rank() != deck.King {
			return illegal(NonKingOnEmpty, "only a King can go on an empty column, not %s", c)
		}
		return nil
	}

	if !top.FaceUp() {
		return illegal(FaceDown, "cannot build on a face-down card")
	}
	if top.Rank() != c.Rank()+1 {
		return illegal(WrongRank, "%s cannot go on %s", c, top)
	}
	if top.Color() == c.Color() {
		return illegal(WrongColor, "%s cannot go on %s", c, top)
	}
	return nil
}

func canFound(dst *Pile, suit deck.Suit, c deck.Card) error {
	if c.Suit() != suit {
		return illegal(SuitMismatch, "%s does not belong on the %s foundation", c, suit)
	}

	top, ok := dst.Top()
	if !ok {
		if c.Rank() != deck.Ace {
			return illegal(FoundationSequenceBreak, "the %s foundation must start with an Ace, not %s", suit, c)
		}
		return nil
	}

	if c.Rank() != top.Rank()+1 {
		return illegal(FoundationSequenceBreak, "%s cannot follow %s", c, top)
	}
	return nil
}
