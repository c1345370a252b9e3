package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Rank represents a rank in a deck of cards
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankNames = []string{"", "Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

var rankSymbols = []string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

func (r Rank) valid() bool {
	return r >= Ace && r <= King
}

func (r Rank) String() string {
	if !r.valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// Symbol is the short display value of a rank (A, 2-10, J, Q, K)
func (r Rank) Symbol() string {
	if !r.valid() {
		return "?"
	}
	return rankSymbols[r]
}

// Suit represents a suit in a deck of cards
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in foundation order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

var (
	suitNames   = []string{"Clubs", "Diamonds", "Hearts", "Spades"}
	suitIDs     = []string{"clubs", "diamonds", "hearts", "spades"}
	suitSymbols = []string{"♣", "♦", "♥", "♠"}
)

var ErrUnknownSuit = errors.New("unknown suit")

func (s Suit) valid() bool {
	return s >= Clubs && s <= Spades
}

func (s Suit) String() string {
	if !s.valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// ID is the lower-case identifier used in locations and JSON
func (s Suit) ID() string {
	if !s.valid() {
		return ""
	}
	return suitIDs[s]
}

// Symbol returns the unicode symbol for the suit
func (s Suit) Symbol() string {
	if !s.valid() {
		return "?"
	}
	return suitSymbols[s]
}

// Color returns the colour of the suit
func (s Suit) Color() Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

// ParseSuit turns an identifier such as "hearts" into a Suit
func ParseSuit(id string) (Suit, error) {
	for i, name := range suitIDs {
		if strings.EqualFold(id, name) {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSuit, id)
}

// Color is the colour of a card
type Color int

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Card represents a playing card.
// Rank and suit are fixed at construction; only the face-up flag changes.
type Card struct {
	rank   Rank
	suit   Suit
	faceUp bool
}

var ErrCardOutOfRange = errors.New("card arguments out of range")

// NewCard constructs a face-down card. It panics if rank or suit is out of range.
func NewCard(rank Rank, suit Suit) Card {
	c, err := MakeCard(rank, suit, false)
	if err != nil {
		panic(err)
	}
	return c
}

// MakeCard constructs a card from untrusted values
func MakeCard(rank Rank, suit Suit, faceUp bool) (Card, error) {
	if !rank.valid() || !suit.valid() {
		return Card{}, fmt.Errorf("%w: rank %d, suit %d", ErrCardOutOfRange, int(rank), int(suit))
	}
	return Card{rank: rank, suit: suit, faceUp: faceUp}, nil
}

func (c Card) Rank() Rank {
	return c.rank
}

func (c Card) Suit() Suit {
	return c.suit
}

func (c Card) FaceUp() bool {
	return c.faceUp
}

func (c Card) Color() Color {
	return c.suit.Color()
}

func (c Card) IsRed() bool {
	return c.Color() == Red
}

// Turned returns a copy of the card with the given face-up state
func (c Card) Turned(faceUp bool) Card {
	c.faceUp = faceUp
	return c
}

// Equals compares identity (rank and suit), ignoring which way up the card is
func (c Card) Equals(other Card) bool {
	return c.rank == other.rank && c.suit == other.suit
}

// Index is a unique number 0-51 for the card's identity
func (c Card) Index() int {
	return int(c.suit)*13 + int(c.rank) - 1
}

// Describe returns the full name of a card, e.g. "Queen of Hearts"
func (c Card) Describe() string {
	return fmt.Sprintf("%s of %s", c.rank, c.suit)
}

// Short returns the compact form of a card, e.g. "Q♥"
func (c Card) Short() string {
	return c.rank.Symbol() + c.suit.Symbol()
}

func (c Card) String() string {
	return c.Describe()
}
