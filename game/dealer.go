package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/minaorangina/klondike/deck"
	uuid "github.com/satori/go.uuid"
)

// NewID constructs a game ID
func NewID() string {
	return uuid.NewV4().String()
}

// Dealer shuffles and lays out new games. It is safe for concurrent use.
type Dealer struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewDealer constructs a Dealer with the provided rng or a time-seeded default
func NewDealer(rng *rand.Rand) *Dealer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Dealer{rng: rng, now: time.Now}
}

// NewSeededDealer constructs a Dealer whose games are reproducible
func NewSeededDealer(seed int64) *Dealer {
	return NewDealer(rand.New(rand.NewSource(seed)))
}

// Deal shuffles a full deck and lays out a new game.
// Column i gets i+1 cards with only the last one face up; the rest go to the stock.
func (d *Dealer) Deal(id string) *Game {
	if id == "" {
		id = NewID()
	}

	cards := deck.New()
	d.mu.Lock()
	cards.Shuffle(d.rng)
	d.mu.Unlock()

	g := newGame(id, d.now())
	for col := 0; col < NumColumns; col++ {
		dealt := cards.Deal(col + 1)
		dealt[col] = dealt[col].Turned(true)
		g.tableau[col].push(dealt...)
	}
	g.stock.push(cards.Deal(len(cards))...)

	g.settle()
	return g
}
