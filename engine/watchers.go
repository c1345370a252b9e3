package engine

import (
	"log"

	"github.com/minaorangina/klondike/protocol"
)

const watcherBuffer = 16

type registration struct {
	id    string
	ch    chan protocol.GameState
	state protocol.GameState
}

// AddWatcher registers a watcher and returns the channel its states arrive on.
// The current state is the first value sent.
// Registering an id again replaces, and closes, the previous channel.
func (ge *gameEngine) AddWatcher(id string) <-chan protocol.GameState {
	ch := make(chan protocol.GameState, watcherBuffer)

	ge.mu.Lock()
	defer ge.mu.Unlock()

	select {
	case ge.registerCh <- registration{id, ch, ge.game.State()}:
	case <-ge.done:
		close(ch)
	}

	return ch
}

// RemoveWatcher closes the watcher's channel. Unknown ids are ignored.
func (ge *gameEngine) RemoveWatcher(id string) {
	select {
	case ge.unregisterCh <- id:
	case <-ge.done:
	}
}

// Listen fans states out to watchers until the engine is closed
func (ge *gameEngine) Listen() {
	watchers := map[string]chan protocol.GameState{}

	for {
		select {
		case reg := <-ge.registerCh:
			if old, ok := watchers[reg.id]; ok {
				close(old)
			}
			watchers[reg.id] = reg.ch
			reg.ch <- reg.state

		case id := <-ge.unregisterCh:
			if ch, ok := watchers[id]; ok {
				close(ch)
				delete(watchers, id)
			}

		case state := <-ge.updateCh:
			for id, ch := range watchers {
				if !offer(ch, state) {
					log.Printf("watcher %s of game %s missed an update", id, ge.id)
				}
			}

		case <-ge.done:
			for _, ch := range watchers {
				close(ch)
			}
			return
		}
	}
}

// offer sends without blocking. A full channel loses its oldest state
// so the watcher always ends up with the latest one.
func offer(ch chan protocol.GameState, state protocol.GameState) bool {
	select {
	case ch <- state:
		return true
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- state:
	default:
	}
	return false
}
