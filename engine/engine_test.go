package engine

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/minaorangina/klondike/deck"
	"github.com/minaorangina/klondike/game"
	utils "github.com/minaorangina/klondike/internal"
	"github.com/minaorangina/klondike/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameEngineTestTimeout = time.Duration(200 * time.Millisecond)

func card(r deck.Rank, s deck.Suit, faceUp bool) protocol.CardState {
	return protocol.CardState{Rank: int(r), Suit: s.ID(), FaceUp: faceUp}
}

func run(s deck.Suit, top deck.Rank) []protocol.CardState {
	cards := []protocol.CardState{}
	for r := deck.Ace; r <= top; r++ {
		cards = append(cards, card(r, s, true))
	}
	return cards
}

// gameWith builds a game from the given piles, with every other card face down in the stock
func gameWith(t *testing.T, tableau map[int][]protocol.CardState, foundations map[string][]protocol.CardState, waste []protocol.CardState) *game.Game {
	t.Helper()

	used := map[string]bool{}
	key := func(c protocol.CardState) string {
		return fmt.Sprintf("%d-%s", c.Rank, c.Suit)
	}
	mark := func(cards []protocol.CardState) {
		for _, c := range cards {
			used[key(c)] = true
		}
	}

	data := protocol.SavedGame{
		GameID:      "engine-test",
		CreatedAt:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Tableau:     make([][]protocol.CardState, game.NumColumns),
		Foundations: foundations,
		Waste:       waste,
	}
	for i, column := range tableau {
		data.Tableau[i] = column
		mark(column)
	}
	for _, cards := range foundations {
		mark(cards)
	}
	mark(waste)

	for _, c := range deck.New() {
		s := card(c.Rank(), c.Suit(), false)
		if !used[key(s)] {
			data.Stock = append(data.Stock, s)
		}
	}

	g, err := game.Deserialize(data)
	require.NoError(t, err)
	return g
}

func nearlyWon(t *testing.T) *game.Game {
	return gameWith(t, nil, map[string][]protocol.CardState{
		"clubs":    run(deck.Clubs, deck.King),
		"diamonds": run(deck.Diamonds, deck.King),
		"spades":   run(deck.Spades, deck.King),
		"hearts":   run(deck.Hearts, deck.Queen),
	}, []protocol.CardState{card(deck.King, deck.Hearts, true)})
}

func newTestEngine(t *testing.T, opts GameEngineOpts) GameEngine {
	t.Helper()

	if opts.Game == nil {
		opts.Game = game.NewSeededDealer(17).Deal("engine-test")
	}
	ge, err := NewGameEngine(opts)
	utils.AssertNoError(t, err)
	t.Cleanup(ge.Close)

	return ge
}

func TestGameEngineConstructor(t *testing.T) {
	t.Run("needs a game", func(t *testing.T) {
		_, err := NewGameEngine(GameEngineOpts{})
		utils.AssertErrorIs(t, err, ErrMissingGame)
	})

	t.Run("takes its id from the game", func(t *testing.T) {
		ge := newTestEngine(t, GameEngineOpts{})
		utils.AssertEqual(t, ge.ID(), "engine-test")
		utils.AssertEqual(t, ge.State().GameID, "engine-test")
	})
}

func TestGameEngineDraw(t *testing.T) {
	ge := newTestEngine(t, GameEngineOpts{})

	state, err := ge.Draw()
	utils.AssertNoError(t, err)
	utils.AssertEqual(t, state.MovesCount, 1)
	utils.AssertEqual(t, state.StockCount, 23)
	utils.AssertEqual(t, len(state.Waste), 1)
	utils.AssertDeepEqual(t, ge.State(), state)
}

func TestGameEngineMove(t *testing.T) {
	kingOverHidden := func(t *testing.T) *game.Game {
		return gameWith(t, map[int][]protocol.CardState{
			0: {card(deck.Two, deck.Spades, false), card(deck.King, deck.Hearts, true)},
		}, nil, nil)
	}

	t.Run("leaves uncovered cards face down by default", func(t *testing.T) {
		ge := newTestEngine(t, GameEngineOpts{Game: kingOverHidden(t)})

		state, err := ge.Move(game.TableauLocation(0), game.TableauLocation(3), game.TopCard)
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, state.MovesCount, 1)
		utils.AssertEqual(t, state.Tableau[0][0].FaceUp, false)

		state, err = ge.Flip(0)
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, state.Tableau[0][0].FaceUp, true)
		utils.AssertEqual(t, state.MovesCount, 1)
	})

	t.Run("turns uncovered cards up with AutoFlip", func(t *testing.T) {
		ge := newTestEngine(t, GameEngineOpts{Game: kingOverHidden(t), AutoFlip: true})

		state, err := ge.Move(game.TableauLocation(0), game.TableauLocation(3), game.TopCard)
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, state.Tableau[0][0].FaceUp, true)
		utils.AssertEqual(t, state.MovesCount, 1)
	})

	t.Run("reports illegal moves and changes nothing", func(t *testing.T) {
		ge := newTestEngine(t, GameEngineOpts{Game: kingOverHidden(t)})
		before := ge.Snapshot()

		_, err := ge.Move(game.TableauLocation(1), game.TableauLocation(0), game.TopCard)
		utils.AssertErrorIs(t, err, game.ErrEmptySource)

		_, err = ge.Move(game.TableauLocation(0), game.FoundationLocation(deck.Hearts), game.TopCard)
		utils.AssertErrorIs(t, err, game.ErrIllegalMove)

		utils.AssertDeepEqual(t, ge.Snapshot(), before)
	})
}

func TestGameEngineGameOver(t *testing.T) {
	ge := newTestEngine(t, GameEngineOpts{Game: nearlyWon(t)})

	state, err := ge.Move(game.WasteLocation(), game.FoundationLocation(deck.Hearts), game.TopCard)
	utils.AssertNoError(t, err)
	utils.AssertTrue(t, state.GameWon)
	utils.AssertEqual(t, state.Stage, "won")

	_, err = ge.Draw()
	utils.AssertErrorIs(t, err, ErrGameOver)

	_, err = ge.Move(game.FoundationLocation(deck.Hearts), game.TableauLocation(0), game.TopCard)
	utils.AssertErrorIs(t, err, ErrGameOver)

	_, err = ge.Flip(0)
	utils.AssertErrorIs(t, err, ErrGameOver)
}

func TestGameEngineWatchers(t *testing.T) {
	t.Run("sends the current state then every change", func(t *testing.T) {
		ge := newTestEngine(t, GameEngineOpts{})
		updates := ge.AddWatcher("watcher-1")

		utils.Within(t, gameEngineTestTimeout, func() {
			first := <-updates
			utils.AssertEqual(t, first.MovesCount, 0)
		})

		_, err := ge.Draw()
		utils.AssertNoError(t, err)

		utils.Within(t, gameEngineTestTimeout, func() {
			next := <-updates
			utils.AssertEqual(t, next.MovesCount, 1)
		})
	})

	t.Run("does not send failed moves", func(t *testing.T) {
		ge := newTestEngine(t, GameEngineOpts{})
		updates := ge.AddWatcher("watcher-1")
		<-updates

		_, err := ge.Flip(9)
		utils.AssertErrored(t, err)
		_, err = ge.Draw()
		utils.AssertNoError(t, err)

		utils.Within(t, gameEngineTestTimeout, func() {
			next := <-updates
			utils.AssertEqual(t, next.MovesCount, 1)
		})
	})

	t.Run("RemoveWatcher closes the channel", func(t *testing.T) {
		ge := newTestEngine(t, GameEngineOpts{})
		updates := ge.AddWatcher("watcher-1")
		<-updates

		ge.RemoveWatcher("watcher-1")
		ge.RemoveWatcher("nobody")

		utils.Within(t, gameEngineTestTimeout, func() {
			_, ok := <-updates
			assert.False(t, ok)
		})
	})

	t.Run("registering an id again replaces the old channel", func(t *testing.T) {
		ge := newTestEngine(t, GameEngineOpts{})
		old := ge.AddWatcher("watcher-1")
		<-old
		replacement := ge.AddWatcher("watcher-1")

		utils.Within(t, gameEngineTestTimeout, func() {
			_, ok := <-old
			assert.False(t, ok)
			<-replacement
		})
	})

	t.Run("Close closes every watcher", func(t *testing.T) {
		ge := newTestEngine(t, GameEngineOpts{})
		a, b := ge.AddWatcher("a"), ge.AddWatcher("b")
		ge.Close()

		utils.Within(t, gameEngineTestTimeout, func() {
			for range a {
			}
			for range b {
			}
		})

		late := ge.AddWatcher("late")
		_, ok := <-late
		assert.False(t, ok)
	})

	t.Run("a slow watcher ends up with the latest state", func(t *testing.T) {
		ge := newTestEngine(t, GameEngineOpts{})
		updates := ge.AddWatcher("slow")

		for i := 0; i < 2*watcherBuffer; i++ {
			_, err := ge.Draw()
			require.NoError(t, err)
		}

		utils.Within(t, time.Second, func() {
			var last protocol.GameState
			for last.MovesCount < 2*watcherBuffer {
				last = <-updates
			}
			utils.AssertEqual(t, last.MovesCount, 2*watcherBuffer)
		})
	})
}

func TestGameEngineConcurrentDraws(t *testing.T) {
	ge := newTestEngine(t, GameEngineOpts{})

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ge.Draw()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state := ge.State()
	utils.AssertEqual(t, state.MovesCount, 40)
	utils.AssertEqual(t, state.StockCount+len(state.Waste), 24)
}
