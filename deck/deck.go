package deck

import (
	"math/rand"
	"time"
)

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents a deck of cards, top of the deck first
type Deck []Card

// New creates an ordered, face-down deck of cards
func New() Deck {
	cards := make(Deck, 0, Size)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle shuffles the deck with the given source of randomness.
// A nil rng falls back to a time-seeded one.
func (d Deck) Shuffle(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Deal takes n cards from the top of the deck.
// It returns no cards if n is negative or larger than the deck.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || n > len(*d) {
		return []Card{}
	}
	dealt := make([]Card, n)
	copy(dealt, (*d)[:n])
	*d = (*d)[n:]
	return dealt
}
