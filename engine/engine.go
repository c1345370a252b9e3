package engine

import (
	"errors"
	"log"
	"sync"

	"github.com/minaorangina/klondike/game"
	"github.com/minaorangina/klondike/protocol"
)

var (
	ErrGameOver    = errors.New("game is already won")
	ErrMissingGame = errors.New("missing game")
)

// GameEngine hosts one game and serialises every operation on it
type GameEngine interface {
	ID() string
	State() protocol.GameState
	Draw() (protocol.GameState, error)
	Move(from, to game.Location, cardIndex int) (protocol.GameState, error)
	Flip(column int) (protocol.GameState, error)
	Snapshot() protocol.SavedGame
	AddWatcher(id string) <-chan protocol.GameState
	RemoveWatcher(id string)
	Close()
}

type GameEngineOpts struct {
	Game *game.Game
	// AutoFlip turns up a face-down card uncovered by a tableau move
	AutoFlip bool
}

type gameEngine struct {
	id       string
	autoFlip bool

	mu   sync.Mutex
	game *game.Game

	registerCh   chan registration
	unregisterCh chan string
	updateCh     chan protocol.GameState
	done         chan struct{}
	closeOnce    sync.Once
}

// NewGameEngine wraps a game and starts broadcasting its changes
func NewGameEngine(opts GameEngineOpts) (GameEngine, error) {
	if opts.Game == nil {
		return nil, ErrMissingGame
	}

	ge := &gameEngine{
		id:           opts.Game.ID(),
		autoFlip:     opts.AutoFlip,
		game:         opts.Game,
		registerCh:   make(chan registration),
		unregisterCh: make(chan string),
		updateCh:     make(chan protocol.GameState),
		done:         make(chan struct{}),
	}

	go ge.Listen()

	return ge, nil
}

func (ge *gameEngine) ID() string {
	return ge.id
}

func (ge *gameEngine) State() protocol.GameState {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	return ge.game.State()
}

// Snapshot returns the full game for saving
func (ge *gameEngine) Snapshot() protocol.SavedGame {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	return ge.game.Serialize()
}

// Draw turns over the next stock card, or recycles the waste
func (ge *gameEngine) Draw() (protocol.GameState, error) {
	return ge.mutate(func(g *game.Game) error {
		return g.DrawFromStock()
	})
}

// Move moves the card at cardIndex in from, with every card above it, onto to
func (ge *gameEngine) Move(from, to game.Location, cardIndex int) (protocol.GameState, error) {
	return ge.mutate(func(g *game.Game) error {
		if err := g.MoveCard(from, to, cardIndex); err != nil {
			return err
		}

		if ge.autoFlip && from.Kind == game.TableauLoc {
			if top, ok := g.Tableau(from.Column).Top(); ok && !top.FaceUp() {
				return g.FlipTableau(from.Column)
			}
		}
		return nil
	})
}

// Flip turns up the top card of a tableau column
func (ge *gameEngine) Flip(column int) (protocol.GameState, error) {
	return ge.mutate(func(g *game.Game) error {
		return g.FlipTableau(column)
	})
}

func (ge *gameEngine) mutate(fn func(*game.Game) error) (protocol.GameState, error) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	if ge.game.Won() {
		return protocol.GameState{}, ErrGameOver
	}

	if err := fn(ge.game); err != nil {
		return protocol.GameState{}, err
	}

	state := ge.game.State()
	if state.GameWon {
		log.Printf("game %s won in %d moves", ge.id, state.MovesCount)
	}

	ge.publish(state)
	return state, nil
}

// publish hands a state to the hub in the order the changes were made
func (ge *gameEngine) publish(state protocol.GameState) {
	select {
	case ge.updateCh <- state:
	case <-ge.done:
	}
}

// Close stops the hub and closes every watcher channel
func (ge *gameEngine) Close() {
	ge.closeOnce.Do(func() {
		close(ge.done)
	})
}
