package game

import (
	"strings"

	"github.com/minaorangina/klondike/deck"
)

// PileKind says how a pile behaves
type PileKind int

const (
	StockPile PileKind = iota
	WastePile
	TableauPile
	FoundationPile
)

var pileKindNames = []string{"stock", "waste", "tableau", "foundation"}

func (k PileKind) String() string {
	if k < StockPile || k > FoundationPile {
		return ""
	}
	return pileKindNames[k]
}

// Pile is an ordered sequence of cards, bottom first.
// The stock is the exception: its first card is the next one drawn.
type Pile struct {
	kind  PileKind
	cards []deck.Card
}

func newPile(kind PileKind) *Pile {
	return &Pile{kind: kind, cards: []deck.Card{}}
}

func (p *Pile) Kind() PileKind {
	return p.kind
}

func (p *Pile) Len() int {
	return len(p.cards)
}

func (p *Pile) IsEmpty() bool {
	return len(p.cards) == 0
}

// Top returns the last card of the pile
func (p *Pile) Top() (deck.Card, bool) {
	if len(p.cards) == 0 {
		return deck.Card{}, false
	}
	return p.cards[len(p.cards)-1], true
}

// At returns the card at index i, counting from the bottom
func (p *Pile) At(i int) (deck.Card, bool) {
	if i < 0 || i >= len(p.cards) {
		return deck.Card{}, false
	}
	return p.cards[i], true
}

// Cards returns a copy of the pile's contents
func (p *Pile) Cards() []deck.Card {
	out := make([]deck.Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// Describe lists the pile's cards, hiding face-down ones
func (p *Pile) Describe() string {
	if len(p.cards) == 0 {
		return p.kind.String() + ": empty"
	}
	names := make([]string, 0, len(p.cards))
	for _, c := range p.cards {
		if c.FaceUp() {
			names = append(names, c.Short())
		} else {
			names = append(names, "[??]")
		}
	}
	return p.kind.String() + ": " + strings.Join(names, " ")
}

func (p *Pile) push(cards ...deck.Card) {
	p.cards = append(p.cards, cards...)
}

// takeFrom removes and returns cards[i:]
func (p *Pile) takeFrom(i int) []deck.Card {
	taken := make([]deck.Card, len(p.cards)-i)
	copy(taken, p.cards[i:])
	p.cards = p.cards[:i]
	return taken
}

func (p *Pile) takeFront() deck.Card {
	c := p.cards[0]
	p.cards = append([]deck.Card{}, p.cards[1:]...)
	return c
}

func (p *Pile) turnTop(faceUp bool) {
	last := len(p.cards) - 1
	p.cards[last] = p.cards[last].Turned(faceUp)
}
